package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"smartpark/handlers"
	"smartpark/models"
	"smartpark/services"
	"smartpark/utils"
)

// lookupRole resolves the current role for a user id. Indirection for tests.
var lookupRole = services.RoleByID

// AuthMiddleware validates the JWT and loads user_id, username, email and role
// into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Falta el encabezado Authorization",
				"error":   "Authorization header is required",
				"code":    "ERR_NO_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Formato de Authorization inválido",
				"error":   "Authorization header must be in the format 'Bearer <token>'",
				"code":    "ERR_INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return utils.JWTSecret, nil
		}, jwt.WithExpirationRequired())

		if err != nil {
			log.Printf("Token parsing error: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "La sesión ha expirado",
					"error":   "Token has expired",
					"code":    "ERR_TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "Token inválido",
					"error":   err.Error(),
					"code":    "ERR_INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Contenido del token inválido",
				"error":   "Invalid token claims or token is not valid",
				"code":    "ERR_INVALID_CLAIMS",
			})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			log.Printf("Missing or invalid user_id in token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "ID de usuario inválido",
				"error":   "Invalid user_id in token",
				"code":    "ERR_INVALID_USER_ID",
			})
			c.Abort()
			return
		}

		username, _ := claims["username"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		c.Set("user_id", int(userID))
		c.Set("username", username)
		c.Set("email", email)
		c.Set("role", role)
		c.Next()
	}
}

// AdminMiddleware re-reads the role from the database so a revoked admin
// loses access on the next request, not on token expiry.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "No autenticado",
				"error":   "user_id not found in context",
				"code":    "ERR_NO_USER_ID",
			})
			c.Abort()
			return
		}

		role, err := lookupRole(userID)
		if err != nil {
			log.Printf("Role lookup failed for user %d: %v", userID, err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "No se pudo verificar el rol",
				"error":   "role lookup failed",
				"code":    "ERR_ROLE_LOOKUP",
			})
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  false,
				"message": "Permisos insuficientes",
				"error":   "Insufficient role permissions",
				"code":    "ERR_PERMISSION_DENIED",
			})
			c.Abort()
			return
		}

		c.Set("role", role)
		c.Next()
	}
}

func Path(router *gin.RouterGroup) {
	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		users := v1.Group("/users")
		{
			users.POST("/register", handlers.RegisterUser)
			users.POST("/login", handlers.LoginUser)

			usersWithAuth := users.Group("")
			usersWithAuth.Use(AuthMiddleware())
			{
				usersWithAuth.GET("/profile", handlers.GetProfile)
			}
		}

		// Slot board: public read, reservation flow optionally authenticated.
		espacios := v1.Group("/espacios")
		{
			espacios.GET("", handlers.ListSlots)
			espacios.POST("/:id/seleccionar", handlers.SelectSlot)
		}

		reservas := v1.Group("/reservas")
		{
			reservas.POST("", OptionalAuth(), handlers.CreateReservation)
			reservas.GET("", handlers.ListReservations)
			reservas.GET("/mis-reservas", AuthMiddleware(), handlers.MyReservations)
			reservas.GET("/:id", handlers.GetReservation)
			reservas.GET("/:id/qr", handlers.ReservationQR)
			reservas.POST("/:id/extender", handlers.ExtendReservation)
			reservas.POST("/:id/pagar", OptionalAuth(), handlers.PayReservation)
			reservas.DELETE("/:id", handlers.CancelReservation)
		}

		admin := v1.Group("/admin")
		admin.Use(AuthMiddleware(), AdminMiddleware())
		{
			admin.POST("/estacionamientos", handlers.CreateParkingLot)
			admin.GET("/estacionamientos", handlers.GetParkingLots)
			admin.GET("/estacionamientos/:id", handlers.GetParkingLot)
			admin.PUT("/estacionamientos/:id", handlers.UpdateParkingLot)
			admin.DELETE("/estacionamientos/:id", handlers.DeleteParkingLot)

			admin.POST("/areas", handlers.CreateArea)
			admin.GET("/areas", handlers.GetAreas)
			admin.PUT("/areas/:id", handlers.UpdateArea)
			admin.DELETE("/areas/:id", handlers.DeleteArea)

			admin.POST("/espacios", handlers.CreateSpace)
			admin.GET("/espacios", handlers.GetSpaces)
			admin.PUT("/espacios/:id", handlers.UpdateSpace)
			admin.DELETE("/espacios/:id", handlers.DeleteSpace)

			admin.GET("/usuarios", handlers.GetAllUsers)
			admin.GET("/usuarios/:id", handlers.GetUser)
			admin.PUT("/usuarios/:id", handlers.UpdateUser)
			admin.DELETE("/usuarios/:id", handlers.DeleteUser)
		}
	}
}

// OptionalAuth loads identity when a Bearer token is present and lets the
// request through anonymously otherwise.
func OptionalAuth() gin.HandlerFunc {
	auth := AuthMiddleware()
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		auth(c)
	}
}
