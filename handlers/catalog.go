package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListSlots returns the selection catalog.
func ListSlots(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Espacios disponibles", catalog.ListSlots())
}

// SelectSlot validates a pending selection before the confirmation form.
func SelectSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID de espacio inválido", err.Error(), "ERR_VALIDATION")
		return
	}

	selected, err := catalog.SelectSlot(id)
	if err != nil {
		log.Printf("Slot selection rejected for #%d: %v", id, err)
		ServiceError(c, "No se pudo seleccionar el espacio", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Espacio seleccionado", gin.H{"slotId": selected})
}
