package avatar

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
)

// Image is a validated avatar upload.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

var allowed = []struct {
	mime string
	ext  string
}{
	{"image/png", ".png"},
	{"image/jpeg", ".jpg"},
	{"image/gif", ".gif"},
	{"image/webp", ".webp"},
}

// DecodeBase64 accepts a data URL or a bare base64 payload.
func DecodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 || !strings.HasSuffix(payload[:idx], ";base64") {
			return nil, fmt.Errorf("%w: malformed data url", domainErrors.ErrUnsupportedImage)
		}
		payload = payload[idx+1:]
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty image", domainErrors.ErrInvalidInput)
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(payload); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid base64", domainErrors.ErrUnsupportedImage)
}

// Inspect sniffs the content type and enforces the size limit.
func Inspect(data []byte, maxBytes int64) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domainErrors.ErrInvalidInput)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, domainErrors.ErrImageTooLarge
	}

	detected := mimetype.Detect(data)
	for _, a := range allowed {
		if detected.Is(a.mime) {
			return &Image{Data: data, ContentType: a.mime, Ext: a.ext}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domainErrors.ErrUnsupportedImage, detected.String())
}
