package extractor

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"note-quiz/internal/config"

	"github.com/gen2brain/go-fitz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// recordingOCR keeps the rendered images it receives.
type recordingOCR struct {
	mu     sync.Mutex
	images [][]byte
	text   string
}

func (r *recordingOCR) Recognize(ctx context.Context, img []byte, language string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images = append(r.images, img)
	return r.text, nil
}

func TestPDFExtractor_FitzTextLayerVerbatim(t *testing.T) {
	path := filepath.Join("testdata", "text_layer.pdf")

	doc, err := fitz.New(path)
	require.NoError(t, err)
	require.Equal(t, 2, doc.NumPage())
	first, err := doc.Text(0)
	require.NoError(t, err)
	second, err := doc.Text(1)
	require.NoError(t, err)
	require.NoError(t, doc.Close())

	ocr := &recordingOCR{text: "should not be used"}
	e := NewPDFExtractor(ocr, config.OCRConfig{Language: "eng", DPI: 72, Workers: 1})

	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first+pageSeparator+second, text)
	assert.Contains(t, text, "Photosynthesis converts light into energy.")
	assert.Less(t, strings.Index(text, "Photosynthesis"), strings.Index(text, "Chlorophyll"), "pages keep their order")
	assert.Empty(t, ocr.images, "OCR must not run when a text layer exists")
}

func TestPDFExtractor_FitzRendersPagesForOCR(t *testing.T) {
	ocr := &recordingOCR{text: "scanned words"}
	e := NewPDFExtractor(ocr, config.OCRConfig{Language: "eng", DPI: 72, Workers: 1})

	text, err := e.Extract(context.Background(), filepath.Join("testdata", "no_text.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "scanned words", text)
	require.Len(t, ocr.images, 1)
	assert.True(t, bytes.HasPrefix(ocr.images[0], pngSignature), "pages are rendered as PNG")
}

func TestTesseractEngine_RecognizesRenderedPage(t *testing.T) {
	if testing.Short() {
		t.Skip("tesseract run skipped in short mode")
	}

	doc, err := fitz.New(filepath.Join("testdata", "text_layer.pdf"))
	require.NoError(t, err)
	img, err := doc.ImagePNG(0, 200)
	require.NoError(t, err)
	require.NoError(t, doc.Close())

	text, err := NewTesseractEngine().Recognize(context.Background(), img, "eng")
	if err != nil {
		t.Skipf("tesseract language data unavailable: %v", err)
	}
	assert.Contains(t, text, "Photosynthesis")
}

func TestTesseractEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTesseractEngine().Recognize(ctx, []byte("ignored"), "eng")
	assert.ErrorIs(t, err, context.Canceled)
}
