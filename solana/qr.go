package solana

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// ExplorerQR generates a PNG QR code of the explorer page for address
func ExplorerQR(explorerBase, address string) ([]byte, error) {
	if !IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	qr, err := qrcode.New(ExplorerAccountURL(explorerBase, address), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}
