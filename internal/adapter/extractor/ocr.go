package extractor

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCREngine turns a rendered page image into text.
type OCREngine interface {
	Recognize(ctx context.Context, img []byte, language string) (string, error)
}

// TesseractEngine runs Tesseract through gosseract. A gosseract client is not
// safe for concurrent use, so each call gets its own.
type TesseractEngine struct{}

func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

func (t *TesseractEngine) Recognize(ctx context.Context, img []byte, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("tesseract language %q: %w", language, err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("tesseract image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognize: %w", err)
	}
	return text, nil
}
