package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"note-quiz/internal/domain"
	"note-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/fail", func(c *fiber.Ctx) error { return err })
	return app
}

func decode(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"note not found", domain.NewNoteNotFoundError("n1"), 404, "NOTE_NOT_FOUND", "Note not found with ID: n1"},
		{"group not found", domain.NewGroupNotFoundError("g1"), 404, "GROUP_NOT_FOUND", "Group not found with ID: g1"},
		{"invalid input", domain.NewInvalidInputError("Invalid request body"), 400, "INVALID_INPUT", "Invalid request body"},
		{"io", domain.NewIOError("/x.pdf", errors.New("denied")), 500, "IO_ERROR", "Internal server error"},
		{"upstream", domain.NewUpstreamError(errors.New("overloaded")), 500, "UPSTREAM_ERROR", "Internal server error"},
		{"extraction", domain.NewExtractionError("/x.pdf", nil), 500, "EXTRACTION_ERROR", "Internal server error"},
		{"parse", domain.NewParseError("question 2: missing answer"), 500, "PARSE_ERROR", "Internal server error"},
		{"wrapped domain error", errors.Join(errors.New("outer"), domain.NewNoteNotFoundError("n2")), 404, "NOTE_NOT_FOUND", "Note not found with ID: n2"},
		{"fiber error", fiber.ErrMethodNotAllowed, 405, "HTTP_ERROR", "Method Not Allowed"},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newTestApp(tt.err).Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestErrorHandler_DetailsOnlyForClientErrors(t *testing.T) {
	parseErr := domain.NewParseError("question 3: option c is empty").WithContext("question", 3)
	resp, err := newTestApp(parseErr).Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Nil(t, decode(t, resp).Details)

	inputErr := domain.NewInvalidInputError("missing file").WithContext("field", "profilePicture")
	resp, err = newTestApp(inputErr).Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"field": "profilePicture"}, decode(t, resp).Details)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.NewNoteNotFoundError("n1") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusNoContent, entries[0].ContextMap()["status"])
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}
