package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"smartpark/database"
	"smartpark/handlers"
	"smartpark/models"
	"smartpark/routes"
	"smartpark/services"
	"smartpark/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using default environment variables: %v", err)
	}

	utils.InitJWTSecret()

	database.InitDB()

	database.DB.AutoMigrate(
		&models.User{},
		&models.ParkingLot{},
		&models.Area{},
		&models.Space{},
	)
	log.Println("Database migration completed")

	ensureAdminExists()

	slotCount := services.DefaultCatalogSize
	if v := os.Getenv("SLOT_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			slotCount = n
		}
	}
	catalog := services.NewCatalog(slotCount)

	var mirror services.Mirror
	redisClient := database.InitRedis()
	var redisMirror *services.RedisMirror
	if redisClient != nil {
		redisMirror = services.NewRedisMirror(redisClient)
		mirror = redisMirror
	} else {
		log.Println("Redis unavailable, reservations are kept in memory only")
	}

	ledger := services.NewLedger(mirror)
	ctx := context.Background()
	if err := ledger.Reload(ctx); err != nil {
		log.Printf("Failed to load reservations from mirror: %v", err)
	}
	if redisMirror != nil {
		redisMirror.Watch(ctx, ledger)
	}

	handlers.Setup(catalog, ledger)

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
	}
	gin.SetMode(ginMode)
	log.Printf("Gin mode set to %s", ginMode)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Bienvenido a SmartPark"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	api := r.Group("/api")
	{
		routes.Path(api)
	}

	c := cron.New()
	_, err := c.AddFunc("*/5 * * * *", func() {
		log.Println("Checking for overstayed reservations...")
		ledger.CheckOverstays(time.Now())
	})
	if err != nil {
		log.Fatalf("Failed to schedule overstay check cron job: %v", err)
	}
	c.Start()
	log.Println("Cron jobs started")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates the default admin account on first boot.
func ensureAdminExists() {
	var admin models.User
	if err := database.DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err == nil {
		log.Printf("Admin already exists: email=%s", admin.Email)
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@smartpark.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
		log.Println("ADMIN_PASSWORD not set, using default admin password")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin = models.User{
		Username: "admin",
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}
	log.Printf("Default admin created: email=%s", admin.Email)
}
