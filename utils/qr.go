package utils

import (
	"github.com/skip2/go-qrcode"
)

// GenerateQRCode renders content as a PNG of the given pixel size,
// suitable for the reservation pass shown at the gate.
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
