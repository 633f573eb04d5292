package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartpark/models"
	"smartpark/services"
)

// Administrative screens: gestión de estacionamientos, áreas y espacios.

// --- Estacionamientos ---

func CreateParkingLot(c *gin.Context) {
	var lot models.ParkingLot
	if err := c.ShouldBindJSON(&lot); err != nil {
		log.Printf("Invalid parking lot input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Todos los campos son obligatorios", err.Error(), "ERR_VALIDATION")
		return
	}
	if err := services.CreateParkingLot(&lot); err != nil {
		ServiceError(c, "Error al crear estacionamiento", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Estacionamiento creado correctamente", lot)
}

func GetParkingLots(c *gin.Context) {
	lots, err := services.GetParkingLots(c.Query("nombre"))
	if err != nil {
		ServiceError(c, "Error al cargar estacionamientos", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Estacionamientos", lots)
}

func GetParkingLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	lot, err := services.GetParkingLotByID(id)
	if err != nil {
		ServiceError(c, "Estacionamiento no encontrado", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Estacionamiento", lot)
}

func UpdateParkingLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	var req models.UpdateParkingLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid parking lot update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de actualización inválidos", err.Error(), "ERR_VALIDATION")
		return
	}
	lot, err := services.UpdateParkingLot(id, req)
	if err != nil {
		ServiceError(c, "Error al actualizar", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Estacionamiento actualizado correctamente", lot)
}

func DeleteParkingLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	if err := services.DeleteParkingLot(id); err != nil {
		ServiceError(c, "Error al eliminar estacionamiento", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Estacionamiento eliminado correctamente", nil)
}

// --- Áreas ---

func CreateArea(c *gin.Context) {
	var area models.Area
	if err := c.ShouldBindJSON(&area); err != nil {
		log.Printf("Invalid area input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Todos los campos son obligatorios", err.Error(), "ERR_VALIDATION")
		return
	}
	if err := services.CreateArea(&area); err != nil {
		ServiceError(c, "Error al crear área", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Área creada correctamente", area)
}

func GetAreas(c *gin.Context) {
	lotID, _ := strconv.Atoi(c.Query("lot_id"))
	areas, err := services.GetAreas(lotID, c.Query("nombre"))
	if err != nil {
		ServiceError(c, "Error al cargar áreas", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Áreas", areas)
}

func UpdateArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	var req models.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid area update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de actualización inválidos", err.Error(), "ERR_VALIDATION")
		return
	}
	area, err := services.UpdateArea(id, req)
	if err != nil {
		ServiceError(c, "Error al actualizar área", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Área actualizada correctamente", area)
}

func DeleteArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	if err := services.DeleteArea(id); err != nil {
		ServiceError(c, "Error al eliminar área", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Área eliminada correctamente", nil)
}

// --- Espacios ---

func CreateSpace(c *gin.Context) {
	var space models.Space
	if err := c.ShouldBindJSON(&space); err != nil {
		log.Printf("Invalid space input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Todos los campos son obligatorios", err.Error(), "ERR_VALIDATION")
		return
	}
	if err := services.CreateSpace(&space); err != nil {
		ServiceError(c, "Error al crear espacio", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Espacio creado correctamente", space)
}

func GetSpaces(c *gin.Context) {
	areaID, _ := strconv.Atoi(c.Query("area_id"))
	spaces, err := services.GetSpaces(areaID)
	if err != nil {
		ServiceError(c, "Error al cargar espacios", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Espacios", spaces)
}

func UpdateSpace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	var req models.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid space update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de actualización inválidos", err.Error(), "ERR_VALIDATION")
		return
	}
	space, err := services.UpdateSpace(id, req)
	if err != nil {
		ServiceError(c, "Error al actualizar espacio", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Espacio actualizado correctamente", space)
}

func DeleteSpace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "ID inválido", err.Error(), "ERR_VALIDATION")
		return
	}
	if err := services.DeleteSpace(id); err != nil {
		ServiceError(c, "Error al eliminar espacio", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Espacio eliminado correctamente", nil)
}
