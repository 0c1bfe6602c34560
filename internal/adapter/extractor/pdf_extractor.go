package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"note-quiz/internal/config"
	"note-quiz/internal/domain"
	"note-quiz/internal/logger"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const pageSeparator = "\n\n"

// document is the subset of *fitz.Document the extractor needs.
type document interface {
	NumPage() int
	Text(pageNumber int) (string, error)
	ImagePNG(pageNumber int, dpi float64) ([]byte, error)
	Close() error
}

type openFunc func(path string) (document, error)

func openFitz(path string) (document, error) {
	return fitz.New(path)
}

// PDFExtractor implements domain.TextExtractor. It reads the embedded text
// layer with MuPDF and falls back to OCR over rendered pages when that layer
// is empty.
type PDFExtractor struct {
	open     openFunc
	ocr      OCREngine
	language string
	dpi      float64
	workers  int
}

func NewPDFExtractor(ocr OCREngine, cfg config.OCRConfig) *PDFExtractor {
	e := &PDFExtractor{
		open:     openFitz,
		ocr:      ocr,
		language: cfg.Language,
		dpi:      cfg.DPI,
		workers:  cfg.Workers,
	}
	if e.language == "" {
		e.language = "eng"
	}
	if e.dpi <= 0 {
		e.dpi = 300
	}
	if e.workers <= 0 {
		e.workers = 1
	}
	return e
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	l := logger.Get().With(zap.String("path", path))

	if _, err := os.Stat(path); err != nil {
		return "", domain.NewIOError(path, err)
	}

	doc, err := e.open(path)
	if err != nil {
		return "", domain.NewIOError(path, err)
	}
	defer doc.Close()

	text := directText(doc, l)
	if strings.TrimSpace(text) != "" {
		l.Info("Extracted text layer", zap.Int("pages", doc.NumPage()), zap.Int("chars", len(text)))
		return text, nil
	}

	l.Info("Text layer empty, falling back to OCR", zap.Int("pages", doc.NumPage()))
	if e.ocr == nil {
		return "", domain.NewExtractionError(path, errors.New("no text layer and OCR is not configured"))
	}

	text, err = e.recognize(ctx, doc)
	if err != nil {
		return "", domain.NewExtractionError(path, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewExtractionError(path, errors.New("neither the text layer nor OCR produced any text"))
	}

	l.Info("Extracted text with OCR", zap.Int("chars", len(text)))
	return text, nil
}

func directText(doc document, l *zap.Logger) string {
	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			l.Warn("Failed to read page text", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, pageSeparator)
}

// recognize renders every page first, since a MuPDF document must not be used
// from several goroutines, then runs OCR on the images in parallel.
func (e *PDFExtractor) recognize(ctx context.Context, doc document) (string, error) {
	images := make([][]byte, doc.NumPage())
	for i := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		img, err := doc.ImagePNG(i, e.dpi)
		if err != nil {
			return "", fmt.Errorf("render page %d: %w", i+1, err)
		}
		images[i] = img
	}

	results := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, img := range images {
		g.Go(func() error {
			text, err := e.ocr.Recognize(gctx, img, e.language)
			if err != nil {
				return fmt.Errorf("ocr page %d: %w", i+1, err)
			}
			results[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(results, pageSeparator), nil
}

var _ domain.TextExtractor = (*PDFExtractor)(nil)
