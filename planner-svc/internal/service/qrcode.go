package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(dishID int) ([]byte, error)
}

// DefaultQRGenerator encodes the public dish card link printed on meal kits.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(dishID int) ([]byte, error) {
	return qrcode.Encode(g.Link(dishID), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) Link(dishID int) string {
	return fmt.Sprintf("%s/dish/%d", g.BaseURL, dishID)
}
