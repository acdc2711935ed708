package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the QRIS payment payload as a PNG QR image.
type DefaultQRGenerator struct {
	MerchantID string
}

var _ QRGenerator = DefaultQRGenerator{}

func (g DefaultQRGenerator) Generate(table string, total int) ([]byte, error) {
	payload := fmt.Sprintf("QRIS|%s|%s|%d", g.MerchantID, table, total)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
