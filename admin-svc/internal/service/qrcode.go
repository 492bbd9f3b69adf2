package service

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

var ErrNoWebsite = errors.New("restaurant has no website")

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(content string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// QRCode renders a PNG pointing at the restaurant's website.
func (s *RestaurantService) QRCode(id string) ([]byte, error) {
	rest, ok := s.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if rest.Website == "" {
		return nil, ErrNoWebsite
	}
	return s.QR.Generate(rest.Website)
}
