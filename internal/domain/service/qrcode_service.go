package service

// QRCodeService renders share codes as scannable images.
type QRCodeService interface {
	// GenerateShareQR returns a PNG QR image encoding the given share code.
	GenerateShareQR(shareCode string) ([]byte, error)
}
