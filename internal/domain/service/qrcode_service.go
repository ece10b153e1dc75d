package service

// QRCodeService generates QR code images for sharing a card's public page.
type QRCodeService interface {
	// GenerateCardQR renders a PNG QR code pointing at the public page of the
	// card identified by slug.
	GenerateCardQR(slug string) ([]byte, error)
}
