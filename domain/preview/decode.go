package preview

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

var errEmptyFrame = errors.New("empty frame")

// DecodeFrame turns a base64 text body into an image. The backend sends JPEG; PNG is
// accepted as well since the decoder is format-sniffing.
func DecodeFrame(body []byte) (image.Image, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errEmptyFrame
	}
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
	n, err := base64.StdEncoding.Decode(raw, body)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw[:n]))
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	return img, nil
}
