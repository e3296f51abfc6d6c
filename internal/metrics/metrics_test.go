package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(true, nil))
	assert.Equal(t, OutcomeNotFound, Outcome(false, nil))
	assert.Equal(t, OutcomeError, Outcome(true, errors.New("boom")))
}

func TestObserveProvider(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test", "lookup", OutcomeNotFound))

	ObserveProvider("test", "lookup", time.Now(), false, nil)

	after := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test", "lookup", OutcomeNotFound))
	assert.Equal(t, before+1, after)
	assert.Greater(t, testutil.CollectAndCount(ProviderRequestDuration), 0)
}

func TestObserveTier(t *testing.T) {
	before := testutil.ToFloat64(ResolutionTierTotal.WithLabelValues("boundary", "exact", OutcomeError))

	ObserveTier("boundary", "exact", false, errors.New("timeout"))

	assert.Equal(t, before+1, testutil.ToFloat64(ResolutionTierTotal.WithLabelValues("boundary", "exact", OutcomeError)))
}

func TestHandler(t *testing.T) {
	LayersLoaded.Set(7)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "landscape_layers_loaded 7"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
