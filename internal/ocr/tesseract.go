package ocr

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"
)

// Tesseract extracts text from image bytes with a fresh tesseract client per
// call; gosseract clients are not safe for concurrent use.
type Tesseract struct {
	languages []string
}

func NewTesseract(languages ...string) *Tesseract {
	cleaned := make([]string, 0, len(languages))
	for _, language := range languages {
		if trimmed := strings.TrimSpace(language); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return &Tesseract{languages: cleaned}
}

func (engine *Tesseract) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(engine.languages) > 0 {
		if err := client.SetLanguage(engine.languages...); err != nil {
			return "", errors.Wrap(err, "set OCR language")
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", errors.Wrap(err, "set image for OCR")
	}

	text, err := client.Text()
	if err != nil {
		return "", errors.Wrap(err, "run OCR")
	}
	return strings.TrimSpace(text), nil
}
