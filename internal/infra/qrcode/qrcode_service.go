package qrcode

import (
	"fmt"
	"strings"

	"tapcard/config"
	"tapcard/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	cardBaseURL          string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := 256
	level := qrcode.Medium
	baseURL := ""

	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}

		// Set error correction level
		switch cfg.QRCode.ErrorCorrectionLevel {
		case "L":
			level = qrcode.Low
		case "M":
			level = qrcode.Medium
		case "Q":
			level = qrcode.High
		case "H":
			level = qrcode.Highest
		}

		baseURL = cfg.QRCode.CardBaseURL
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		cardBaseURL:          strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateCardQR generates a PNG QR code pointing at the card's public page.
func (s *qrcodeService) GenerateCardQR(slug string) ([]byte, error) {
	url := s.cardBaseURL + "/" + slug

	qrCode, err := qrcode.New(url, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
