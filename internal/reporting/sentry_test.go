package reporting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledWithoutDSN(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, r.Enabled())

	// Disabled reporter is inert.
	r.Report(context.Background(), errors.New("ignored"))
	assert.NoError(t, r.Flush(context.Background()))
}

func TestNew_InvalidDSN(t *testing.T) {
	_, err := New(Config{DSN: "not a dsn"})
	assert.Error(t, err)
}

func TestMiddleware_DisabledPassThrough(t *testing.T) {
	r := &Reporter{}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		called = true
		assert.Nil(t, sentry.GetHubFromContext(req.Context()))
	})

	r.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestMiddleware_AttachesHub(t *testing.T) {
	r, err := New(Config{DSN: "https://public@sentry.example.com/1", Environment: "test"})
	require.NoError(t, err)
	require.True(t, r.Enabled())

	var hub *sentry.Hub
	next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hub = sentry.GetHubFromContext(req.Context())
	})

	r.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.NotNil(t, hub)
	assert.NotSame(t, sentry.CurrentHub(), hub)
}
