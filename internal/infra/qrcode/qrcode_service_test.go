package qrcode

import (
	"testing"

	"tapcard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(size int, level string) *qrcodeService {
	cfg := &config.Config{}
	cfg.QRCode = &config.QRCodeConfig{
		Size:                 size,
		ErrorCorrectionLevel: level,
		CardBaseURL:          "https://tapcard.test/cards/",
	}

	return NewQRCodeService(cfg).(*qrcodeService)
}

func TestNewQRCodeService_ErrorCorrectionLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Unknown falls back to medium", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(256, tt.level)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateCardQR(t *testing.T) {
	service := newTestService(256, "M")

	qrBytes, err := service.GenerateCardQR("acme-corp")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_TrimsBaseURLSlash(t *testing.T) {
	service := newTestService(256, "M")

	assert.Equal(t, "https://tapcard.test/cards", service.cardBaseURL)
}

func TestNewQRCodeService_DefaultsWithoutConfig(t *testing.T) {
	service := NewQRCodeService(&config.Config{}).(*qrcodeService)

	assert.Equal(t, 256, service.size)

	qrBytes, err := service.GenerateCardQR("acme")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}
