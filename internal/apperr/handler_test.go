package apperr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

type fakeReporter struct {
	reported []error
}

func (f *fakeReporter) Report(_ context.Context, err error) {
	f.reported = append(f.reported, err)
}

// statusErr mimics a third-party error that declares its own status.
type statusErr struct {
	code int
	msg  string
}

func (e statusErr) Error() string   { return e.msg }
func (e statusErr) StatusCode() int { return e.code }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, h *Handler, fn HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Wrap(fn).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/startups/42", nil))

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestHandle_StatusAndMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "declared status and message",
			err:        New(http.StatusBadRequest, "Bad input"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Bad input",
		},
		{
			name:       "plain error defaults to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "boom",
		},
		{
			name:       "empty message falls back",
			err:        errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    DefaultMessage,
		},
		{
			name:       "status error with empty message",
			err:        New(http.StatusBadGateway, ""),
			wantStatus: http.StatusBadGateway,
			wantMsg:    DefaultMessage,
		},
		{
			name:       "foreign status coder",
			err:        statusErr{code: http.StatusUnprocessableEntity, msg: "invalid amount"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "invalid amount",
		},
		{
			name:       "wrapped status survives fmt wrapping",
			err:        fmt.Errorf("loading startup: %w", NotFound("Startup not found")),
			wantStatus: http.StatusNotFound,
			wantMsg:    "loading startup: Startup not found",
		},
		{
			name:       "out of range status ignored",
			err:        statusErr{code: 200, msg: "odd"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "odd",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHandler(discardLogger(), false, nil, nil)
			rec, body := serve(t, h, func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Nil(t, body.Stack, "stack must be absent outside development")
		})
	}
}

func TestHandle_StackOnlyInDevelopment(t *testing.T) {
	t.Parallel()

	fail := func(w http.ResponseWriter, r *http.Request) error {
		return BadRequest("Bad input")
	}

	_, prod := serve(t, NewHandler(discardLogger(), false, nil, nil), fail)
	assert.Nil(t, prod.Stack)

	_, dev := serve(t, NewHandler(discardLogger(), true, nil, nil), fail)
	require.NotNil(t, dev.Stack)
	assert.True(t, strings.HasPrefix(*dev.Stack, "Bad input"))
	assert.Contains(t, *dev.Stack, "handler_test.go")
}

func TestHandle_StackForPlainErrors(t *testing.T) {
	t.Parallel()

	_, body := serve(t, NewHandler(discardLogger(), true, nil, nil), func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("plain")
	})

	require.NotNil(t, body.Stack)
	assert.True(t, strings.HasPrefix(*body.Stack, "plain\n"))
}

func TestHandle_ReportsOnlyServerErrors(t *testing.T) {
	t.Parallel()

	reporter := &fakeReporter{}
	h := NewHandler(discardLogger(), false, reporter, nil)

	serve(t, h, func(w http.ResponseWriter, r *http.Request) error { return BadRequest("nope") })
	assert.Empty(t, reporter.reported)

	serve(t, h, func(w http.ResponseWriter, r *http.Request) error { return errors.New("db down") })
	require.Len(t, reporter.reported, 1)
	assert.EqualError(t, reporter.reported[0], "db down")
}

func TestHandle_LogLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewHandler(slog.New(slog.NewJSONHandler(&buf, nil)), false, nil, nil)

	serve(t, h, func(w http.ResponseWriter, r *http.Request) error { return Unauthorized("login required") })
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status_code":401`)

	buf.Reset()
	serve(t, h, func(w http.ResponseWriter, r *http.Request) error { return errors.New("crash") })
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"path":"/api/startups/42"`)
}

func TestWrap_NoErrorLeavesResponseAlone(t *testing.T) {
	t.Parallel()

	h := NewHandler(discardLogger(), false, nil, nil)
	rec := httptest.NewRecorder()
	h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusCreated)
		return nil
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWrap_WrappedNilErrorLeavesResponseAlone(t *testing.T) {
	t.Parallel()

	h := NewHandler(discardLogger(), false, nil, nil)
	rec := httptest.NewRecorder()
	h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		var err error
		return Wrap(err, http.StatusBadRequest, "")
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/startups/42", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
