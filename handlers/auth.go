package handlers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"smartpark/models"
	"smartpark/services"
	"smartpark/utils"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUser creates an account. Every account starts with the user
// role; admin is assigned from the administrative area only.
func RegisterUser(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,max=50"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de registro inválidos", err.Error(), "ERR_VALIDATION")
		return
	}

	if !emailRegex.MatchString(input.Email) {
		ErrorResponse(c, http.StatusBadRequest, "Correo electrónico inválido", "invalid email format", "ERR_AUTH")
		return
	}

	// At least 8 characters with a letter and a digit.
	if len(input.Password) < 8 ||
		!regexp.MustCompile(`[a-zA-Z]`).MatchString(input.Password) ||
		!regexp.MustCompile(`[0-9]`).MatchString(input.Password) {
		ErrorResponse(c, http.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres, con letras y números", "weak password", "ERR_AUTH")
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
	if err := services.RegisterUser(&user); err != nil {
		log.Printf("Failed to register user %s: %v", input.Email, err)
		ServiceError(c, "No se pudo crear la cuenta", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Cuenta creada correctamente", user.ToResponse())
}

// LoginUser checks credentials and issues the session token.
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de inicio de sesión inválidos", err.Error(), "ERR_VALIDATION")
		return
	}

	if !emailRegex.MatchString(input.Email) {
		ErrorResponse(c, http.StatusBadRequest, "Correo electrónico inválido", "invalid email format", "ERR_AUTH")
		return
	}

	user, err := services.LoginUser(input.Email, input.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", input.Email, err)
		ServiceError(c, "No se pudo iniciar sesión", err)
		return
	}

	token, err := utils.GenerateToken(user.UserID, user.Username, user.Email, user.Role)
	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.UserID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Error al generar el token", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "Inicio de sesión correcto", gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// GetProfile returns the signed-in principal.
func GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := services.GetUserByID(userID)
	if err != nil {
		log.Printf("Failed to load profile for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Error al cargar el perfil", err.Error(), "ERR_INTERNAL")
		return
	}
	if user == nil {
		ErrorResponse(c, http.StatusNotFound, "Usuario no encontrado", "user not found", "ERR_NOT_FOUND")
		return
	}
	SuccessResponse(c, http.StatusOK, "Perfil cargado", user.ToResponse())
}
