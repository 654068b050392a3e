package http

import (
	"math"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostelmess/polls/internal/logging"
)

func TestMain(m *testing.M) {
	logging.BootstrapLogger()
	os.Exit(m.Run())
}

func TestWriteJSONKeepsStatusOnEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	// NaN is not encodable as JSON, forcing the encoder to fail after
	// the status line has gone out.
	writeJSON(rec, stdhttp.StatusOK, math.NaN())

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "failed to encode response")
}
