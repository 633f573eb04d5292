package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartpark/models"
	"smartpark/services"
)

// GetAllUsers lists accounts, optionally filtered by email prefix (?email=).
func GetAllUsers(c *gin.Context) {
	users, err := services.GetAllUsers(c.Query("email"))
	if err != nil {
		ServiceError(c, "Error al cargar usuarios", err)
		return
	}
	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	SuccessResponse(c, http.StatusOK, "Usuarios", out)
}

func GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	user, err := services.GetUserByID(id)
	if err != nil {
		ServiceError(c, "Error al cargar usuario", err)
		return
	}
	if user == nil {
		ErrorResponse(c, http.StatusNotFound, "Usuario no encontrado", "user not found", "ERR_NOT_FOUND")
		return
	}
	SuccessResponse(c, http.StatusOK, "Usuario", user.ToResponse())
}

type updateUserInput struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid user update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de actualización inválidos", err.Error(), "ERR_VALIDATION")
		return
	}
	user, err := services.UpdateUser(id, input.Username, input.Role)
	if err != nil {
		ServiceError(c, "Error al actualizar usuario", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Usuario actualizado correctamente", user.ToResponse())
}

func DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	if requester := c.GetInt("user_id"); requester == id {
		ErrorResponse(c, http.StatusBadRequest, "No puedes eliminar tu propia cuenta", "self-deletion not allowed", "ERR_VALIDATION")
		return
	}
	if err := services.DeleteUser(id); err != nil {
		ServiceError(c, "Error al eliminar usuario", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Usuario eliminado correctamente", nil)
}
