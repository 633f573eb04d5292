package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartpark/models"
	"smartpark/services"
	"smartpark/utils"
)

// Package-level collaborators, wired once at startup.
var (
	catalog *services.Catalog
	ledger  *services.Ledger
)

// Setup wires the slot catalog and the reservation ledger into the
// handler package.
func Setup(cat *services.Catalog, led *services.Ledger) {
	catalog = cat
	ledger = led
}

// ReservationInput is the confirmation-form payload. EstimatedTime 0
// means "use the default".
type ReservationInput struct {
	SlotID        int    `json:"slot_id" binding:"required,gt=0"`
	EntryTime     string `json:"entry_time"`
	EstimatedTime int    `json:"estimated_time"`
}

// requesterLabel resolves the display name for the ledger, defaulting to
// the guest label when the session carries no username.
func requesterLabel(c *gin.Context) string {
	if username := c.GetString("username"); username != "" {
		return username
	}
	return models.GuestUser
}

func toDetail(r models.Reservation, now time.Time) models.ReservationDetail {
	return models.ReservationDetail{
		Reservation:      r,
		Elapsed:          services.ElapsedString(r, now),
		AmountDue:        services.AmountDue(r, now),
		RemainingMinutes: services.RemainingMinutes(r, now),
	}
}

// CreateReservation confirms a reservation for a previously selected
// free slot.
func CreateReservation(c *gin.Context) {
	var input ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid reservation input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de reserva inválidos", err.Error(), "ERR_VALIDATION")
		return
	}

	// The selection must still be a free slot in the catalog.
	selection, err := catalog.SelectSlot(input.SlotID)
	if err != nil {
		ServiceError(c, "No se pudo reservar el espacio", err)
		return
	}

	record, err := ledger.Create(c.Request.Context(), selection, input.EntryTime, input.EstimatedTime, requesterLabel(c))
	if err != nil {
		ServiceError(c, "No se pudo crear la reserva", err)
		return
	}

	SuccessResponse(c, http.StatusCreated, fmt.Sprintf("¡Reserva confirmada para el Espacio #%d!", record.SlotID), record)
}

// ListReservations returns the full ledger.
func ListReservations(c *gin.Context) {
	now := time.Now()
	records := ledger.List()
	details := make([]models.ReservationDetail, len(records))
	for i, r := range records {
		details[i] = toDetail(r, now)
	}
	SuccessResponse(c, http.StatusOK, "Reservas", details)
}

// MyReservations filters the ledger by the requester label, the view
// behind /mis-reservas.
func MyReservations(c *gin.Context) {
	now := time.Now()
	records := ledger.ListByUser(requesterLabel(c))
	details := make([]models.ReservationDetail, len(records))
	for i, r := range records {
		details[i] = toDetail(r, now)
	}
	SuccessResponse(c, http.StatusOK, fmt.Sprintf("Reservas de %s", requesterLabel(c)), details)
}

// GetReservation returns the detail view with elapsed time, amount due
// and remaining minutes computed at request time.
func GetReservation(c *gin.Context) {
	record, err := ledger.Get(c.Param("id"))
	if err != nil {
		ServiceError(c, "Reserva no encontrada", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Detalles de la reserva", toDetail(record, time.Now()))
}

// ExtendReservation adds minutes to the estimated time.
func ExtendReservation(c *gin.Context) {
	var input struct {
		AdditionalMinutes int `json:"additional_minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Invalid extend input: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Datos de extensión inválidos", err.Error(), "ERR_VALIDATION")
		return
	}

	record, err := ledger.Extend(c.Request.Context(), c.Param("id"), input.AdditionalMinutes)
	if err != nil {
		ServiceError(c, "No se pudo extender la reserva", err)
		return
	}

	SuccessResponse(c, http.StatusOK, fmt.Sprintf("Tiempo extendido %d minutos", input.AdditionalMinutes), record)
}

// PayReservation settles an active reservation. Payment is simulated;
// the method is recorded and a receipt is mailed when SMTP is set up.
func PayReservation(c *gin.Context) {
	var input struct {
		PaymentMethod string `json:"payment_method"`
	}
	// Body is optional; an empty one means the default method.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			log.Printf("Invalid payment input: %v", err)
			ErrorResponse(c, http.StatusBadRequest, "Datos de pago inválidos", err.Error(), "ERR_VALIDATION")
			return
		}
	}

	record, err := ledger.Pay(c.Request.Context(), c.Param("id"), input.PaymentMethod)
	if err != nil {
		ServiceError(c, "No se pudo realizar el pago", err)
		return
	}

	now := time.Now()
	utils.SendPaymentReceipt(c.GetString("email"), utils.ReceiptData{
		ReservationID: record.ID,
		SlotID:        record.SlotID,
		PaymentMethod: record.PaymentMethod,
		Elapsed:       services.ElapsedString(record, now),
		Amount:        services.AmountDue(record, now),
	})

	SuccessResponse(c, http.StatusOK, fmt.Sprintf("Pago realizado con éxito (%s)", record.PaymentMethod), toDetail(record, now))
}

// CancelReservation removes an active reservation from the ledger.
func CancelReservation(c *gin.Context) {
	if err := ledger.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		ServiceError(c, "No se pudo cancelar la reserva", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Reserva cancelada con éxito", nil)
}

// ReservationQR renders the reservation pass as a PNG for the gate
// scanner.
func ReservationQR(c *gin.Context) {
	record, err := ledger.Get(c.Param("id"))
	if err != nil {
		ServiceError(c, "Reserva no encontrada", err)
		return
	}

	content := fmt.Sprintf("smartpark:reserva:%s:espacio:%d:%s", record.ID, record.SlotID, record.Status)
	png, err := utils.GenerateQRCode(content, 256)
	if err != nil {
		log.Printf("Failed to generate QR for reservation %s: %v", record.ID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Error al generar el código QR", err.Error(), "ERR_INTERNAL")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
