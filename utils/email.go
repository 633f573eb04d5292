package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReceiptData feeds the payment receipt mail.
type ReceiptData struct {
	ReservationID string
	SlotID        int
	PaymentMethod string
	Elapsed       string
	Amount        float64
}

// SendPaymentReceipt mails a receipt asynchronously so the payment
// response is not delayed. Without SMTP configuration it is a no-op;
// a delivery failure is only logged.
func SendPaymentReceipt(to string, data ReceiptData) {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		return
	}
	go func() {
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Recibo de pago - Espacio #%d", data.SlotID))
		m.SetBody("text/plain", fmt.Sprintf(
			"¡Pago realizado con éxito!\n\nReserva: %s\nEspacio: #%d\nMétodo: %s\nTiempo transcurrido: %s\nTotal pagado: $%.2f\n",
			data.ReservationID, data.SlotID, data.PaymentMethod, data.Elapsed, data.Amount))

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Failed to send payment receipt to %s: %v", to, err)
		}
	}()
}
