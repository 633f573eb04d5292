package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"smartpark/database"
	"smartpark/models"
	"smartpark/utils"
)

// Sign-in throttling: after maxLoginAttempts consecutive failures for
// one email the account is locked out for loginLockout, mirroring the
// identity provider's too-many-requests behavior.
const (
	maxLoginAttempts = 5
	loginLockout     = 15 * time.Minute
)

type loginAttempt struct {
	failures int
	lastFail time.Time
}

var (
	loginAttemptsMu sync.Mutex
	loginAttempts   = make(map[string]*loginAttempt)
)

// RegisterUser creates an account. Every new account gets the user role;
// admins are only ever seeded or promoted from the administrative area.
func RegisterUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var existing models.User
	if err := database.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return fmt.Errorf("%w: %s", ErrEmailInUse, user.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check for duplicate email: %v", err)
		return fmt.Errorf("failed to check for duplicate email: %w", err)
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword
	user.Role = models.RoleUser

	if err := database.DB.Create(user).Error; err != nil {
		log.Printf("Failed to register user: %v", err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("Successfully registered user with ID %d", user.UserID)
	return nil
}

// LoginUser checks credentials and returns the account. Wrong email and
// wrong password surface the same error so the response does not leak
// which accounts exist.
func LoginUser(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := checkLoginThrottle(email); err != nil {
		return nil, err
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			recordLoginFailure(email)
			return nil, ErrInvalidCredentials
		}
		log.Printf("Failed to query user %s: %v", email, err)
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		recordLoginFailure(email)
		return nil, ErrInvalidCredentials
	}

	clearLoginFailures(email)
	log.Printf("User %d logged in successfully", user.UserID)
	return &user, nil
}

// RoleByID looks up the role for a principal. A missing row resolves to
// the user role instead of failing, the same default the profile store
// applies; a real lookup error propagates so the guard can resolve the
// request as unauthenticated instead of blocking.
func RoleByID(userID int) (string, error) {
	var user models.User
	if err := database.DB.Select("role").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleUser, nil
		}
		log.Printf("Failed to look up role for user %d: %v", userID, err)
		return "", fmt.Errorf("failed to look up role: %w", err)
	}
	if user.Role == "" {
		return models.RoleUser, nil
	}
	return user.Role, nil
}

// GetUserByID returns one account or nil when it does not exist.
func GetUserByID(id int) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetAllUsers lists accounts, optionally narrowed to an email prefix
// (the admin screen's search box).
func GetAllUsers(emailPrefix string) ([]models.User, error) {
	var users []models.User
	query := database.DB.Order("user_id")
	if emailPrefix != "" {
		query = query.Where("email LIKE ?", strings.ToLower(emailPrefix)+"%")
	}
	if err := query.Find(&users).Error; err != nil {
		log.Printf("Failed to query users: %v", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

// UpdateUser changes username and/or role.
func UpdateUser(id int, username, role *string) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: usuario %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if username != nil {
		updates["username"] = *username
	}
	if role != nil {
		if *role != models.RoleAdmin && *role != models.RoleUser {
			return nil, fmt.Errorf("%w: rol inválido %q", ErrValidation, *role)
		}
		updates["role"] = *role
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update user %d: %v", id, err)
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes an account.
func DeleteUser(id int) error {
	result := database.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Printf("Failed to delete user %d: %v", id, result.Error)
		return fmt.Errorf("failed to delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: usuario %d", ErrNotFound, id)
	}
	log.Printf("Deleted user %d", id)
	return nil
}

func checkLoginThrottle(email string) error {
	loginAttemptsMu.Lock()
	defer loginAttemptsMu.Unlock()
	attempt, ok := loginAttempts[email]
	if !ok {
		return nil
	}
	if attempt.failures >= maxLoginAttempts && time.Since(attempt.lastFail) < loginLockout {
		return ErrTooManyAttempts
	}
	if time.Since(attempt.lastFail) >= loginLockout {
		delete(loginAttempts, email)
	}
	return nil
}

func recordLoginFailure(email string) {
	loginAttemptsMu.Lock()
	defer loginAttemptsMu.Unlock()
	attempt, ok := loginAttempts[email]
	if !ok {
		attempt = &loginAttempt{}
		loginAttempts[email] = attempt
	}
	attempt.failures++
	attempt.lastFail = time.Now()
}

func clearLoginFailures(email string) {
	loginAttemptsMu.Lock()
	defer loginAttemptsMu.Unlock()
	delete(loginAttempts, email)
}
