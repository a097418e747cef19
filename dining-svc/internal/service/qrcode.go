package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(tableID uuid.UUID) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

// MenuLink is the URL a table's QR code points at.
func (g DefaultQRGenerator) MenuLink(tableID uuid.UUID) string {
	return fmt.Sprintf("%s/menu?table=%s", strings.TrimRight(g.BaseURL, "/"), tableID)
}

func (g DefaultQRGenerator) Generate(tableID uuid.UUID) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.MenuLink(tableID), qrcode.Medium, size)
}
