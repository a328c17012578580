package certificate

import (
	"encoding/base64"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the pixel width of generated QR codes
const qrSize = 256

// VerificationURL composes the public verification endpoint for a
// certificate number
func VerificationURL(baseURL, certificateNumber string) string {
	return strings.TrimRight(baseURL, "/") + "/api/v1/certificates/verify/" + certificateNumber
}

// QRBuilder produces the scannable verification artifact. The encode seam
// lets tests substitute a failing encoder.
type QRBuilder struct {
	encode func(content string) ([]byte, error)
}

// NewQRBuilder returns a QRBuilder using the default PNG encoder
func NewQRBuilder() *QRBuilder {
	return &QRBuilder{encode: encodeQRPNG}
}

// Build encodes the verification URL into a QR PNG and returns both a
// base64 data URI for storage/embedding and the raw PNG bytes for the
// document renderer.
func (b *QRBuilder) Build(verificationURL string) (string, []byte, error) {
	png, err := b.encode(verificationURL)
	if err != nil {
		return "", nil, &ArtifactGenerationError{Err: err}
	}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	return dataURI, png, nil
}

// encodeQRPNG renders a high error-correction QR code with no quiet-zone
// border at a fixed pixel width
func encodeQRPNG(content string) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	return code.PNG(qrSize)
}
