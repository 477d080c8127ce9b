package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esflavor/internal/api"
	"github.com/dmitrymomot/esflavor/internal/batch"
	"github.com/dmitrymomot/esflavor/internal/metrics"
	"github.com/dmitrymomot/esflavor/pkg/clientip"
	"github.com/dmitrymomot/esflavor/pkg/environment"
	"github.com/dmitrymomot/esflavor/pkg/logger"
	"github.com/dmitrymomot/esflavor/pkg/ratelimiter"
	"github.com/dmitrymomot/esflavor/pkg/requestid"
)

func newTestServer(t *testing.T, opts ...api.Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api.New(opts...).Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestListKinds(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/kinds")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[api.KindsResponse](t, resp)
	assert.Equal(t, []string{"postal_code", "phone_number", "identity_card", "bank_account"}, body.Kinds)
}

func TestValidateOne(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	t.Run("valid identity card", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/identity_card", `{"value":"1234-5678 z"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(requestid.Header))

		body := decode[api.ValidateResponse](t, resp)
		assert.True(t, body.Valid)
		assert.Equal(t, "identity_card", body.Kind)
		assert.Equal(t, "12345678Z", body.Value)
		assert.Equal(t, "NIF", body.Class)
		assert.Nil(t, body.Error)
	})

	t.Run("alias in path", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/zip", `{"value":"28001"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[api.ValidateResponse](t, resp)
		assert.True(t, body.Valid)
		assert.Equal(t, "postal_code", body.Kind)
	})

	t.Run("checksum failure is a normal response", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/bank_account", `{"value":"2100-0418-46-0200051332"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[api.ValidateResponse](t, resp)
		assert.False(t, body.Valid)
		require.NotNil(t, body.Error)
		assert.Equal(t, "checksum", body.Error.Code)
		assert.Equal(t, "validation.es.bank_account.checksum", body.Error.TranslationKey)
		assert.NotEmpty(t, body.Error.Message)
	})

	t.Run("localized message", func(t *testing.T) {
		t.Parallel()

		req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/validate/ccc", strings.NewReader(`{"value":"2100-0418-46-0200051332"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.5")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "es", resp.Header.Get("Content-Language"))
		body := decode[api.ValidateResponse](t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Suma de comprobación no válida para número de cuenta bancaria.", body.Error.Message)
	})

	t.Run("restricted identity card", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/identity_card", `{"value":"A58818501","only_nif_nie":true}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[api.ValidateResponse](t, resp)
		assert.False(t, body.Valid)
		require.NotNil(t, body.Error)
		assert.Equal(t, "invalid_only_nif", body.Error.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/iban", `{"value":"ES00"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decode[api.ErrorResponse](t, resp)
		assert.Equal(t, "unknown_kind", body.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/phone", `{"value":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Post(srv.URL+"/v1/validate/phone", "text/plain", strings.NewReader("612345678"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})

	t.Run("request rules", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate/postal_code", `{"value":"28001","only_nif_nie":true}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decode[api.ErrorResponse](t, resp)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Contains(t, body.Error.Details, "only_nif_nie")

		long := strings.Repeat("1", api.MaxValueLength+1)
		resp = post(t, srv.URL+"/v1/validate/phone", `{"value":"`+long+`"}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body = decode[api.ErrorResponse](t, resp)
		assert.Contains(t, body.Error.Details, "value")
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/v1/validate/phone")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestValidateBatch(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, api.WithBatchRunner(batch.NewRunner(batch.WithWorkers(2)), 3))

	t.Run("ordered results", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate", `{"items":[
			{"kind":"phone","value":"612345678"},
			{"kind":"cif","value":"A5881850B"},
			{"kind":"iban","value":"ES00"}
		]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[api.BatchResponse](t, resp)
		require.Len(t, body.Results, 3)
		assert.True(t, body.Results[0].Valid)
		assert.Equal(t, "invalid_cif", body.Results[1].Code)
		assert.Equal(t, batch.CodeUnknownKind, body.Results[2].Code)
		assert.Equal(t, 2, body.Invalid)
		for i, res := range body.Results {
			assert.Equal(t, i, res.Index)
		}
	})

	t.Run("too many items", func(t *testing.T) {
		t.Parallel()

		item := `{"kind":"phone","value":"612345678"}`
		resp := post(t, srv.URL+"/v1/validate", `{"items":[`+strings.Repeat(item+",", 3)+item+`]}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decode[api.ErrorResponse](t, resp)
		assert.Contains(t, body.Error.Details, "items")
	})

	t.Run("empty items", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate", `{"items":[]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("item without kind", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate", `{"items":[{"value":"612345678"}]}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decode[api.ErrorResponse](t, resp)
		assert.Contains(t, body.Error.Details, "items.0.kind")
	})

	t.Run("only_nif_nie on non identity item", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate", `{"items":[{"kind":"nif","value":"12345678Z","only_nif_nie":true},{"kind":"zip","value":"28001","only_nif_nie":true}]}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decode[api.ErrorResponse](t, resp)
		assert.Contains(t, body.Error.Details, "items.1.only_nif_nie")
		assert.NotContains(t, body.Error.Details, "items.0.only_nif_nie")
	})

	t.Run("only_nif_nie on unknown kind reported per result", func(t *testing.T) {
		t.Parallel()

		resp := post(t, srv.URL+"/v1/validate", `{"items":[{"kind":"iban","value":"ES00","only_nif_nie":true}]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[api.BatchResponse](t, resp)
		require.Len(t, body.Results, 1)
		assert.Equal(t, batch.CodeUnknownKind, body.Results[0].Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	srv := newTestServer(t, api.WithMetrics(metrics.New(reg), reg))

	resp := post(t, srv.URL+"/v1/validate/phone", `{"value":"612345678"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mresp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()

	raw, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `esflavor_validations_total{kind="phone_number",outcome="valid"} 1`)
}

func TestMetrics_UnknownBatchKindsShareSeries(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	srv := newTestServer(t, api.WithMetrics(m, reg))

	for i := range 10 {
		body := fmt.Sprintf(`{"items":[{"kind":"made-up-%d","value":"1"}]}`, i)
		resp := post(t, srv.URL+"/v1/validate", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.Validations))
	assert.InDelta(t, 10, testutil.ToFloat64(m.Validations.WithLabelValues(metrics.KindUnknown, "unknown_kind")), 0)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	lim, err := ratelimiter.New(ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	srv := newTestServer(t, api.WithRateLimit(lim))

	first, err := http.Get(srv.URL + "/v1/kinds")
	require.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(srv.URL + "/v1/kinds")
	require.NoError(t, err)
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	body := decode[api.ErrorResponse](t, second)
	assert.Equal(t, "rate_limited", body.Error.Code)

	health, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	t.Parallel()

	lim, err := ratelimiter.New(ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	router := api.New(api.WithRateLimit(lim)).Router()

	codes := make([]int, 0, 5)
	for i := range 5 {
		req := httptest.NewRequest(http.MethodGet, "/v1/kinds", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
		req.Header.Set("CF-Connecting-IP", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRateLimit_TrustedProxy(t *testing.T) {
	t.Parallel()

	lim, err := ratelimiter.New(ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	res, err := clientip.NewResolver("192.0.2.0/24")
	require.NoError(t, err)
	router := api.New(api.WithRateLimit(lim), api.WithClientIPResolver(res)).Router()

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/kinds", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, api.WithReadinessChecks(func(context.Context) error {
		return errors.New("not ready")
	}))

	resp, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ready, err := http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	defer ready.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, ready.StatusCode)
}

func TestRequestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	router := api.New(api.WithLogger(log), api.WithEnvironment(environment.Staging)).Router()

	req := httptest.NewRequest(http.MethodGet, "/v1/kinds", nil)
	req.Header.Set(requestid.Header, "trace-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-123", rec.Header().Get(requestid.Header))

	out := buf.String()
	assert.Contains(t, out, `"msg":"http request"`)
	assert.Contains(t, out, `"request_id":"trace-123"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"path":"/v1/kinds"`)
	assert.Contains(t, out, `"env":"staging"`)
	assert.Contains(t, out, `"client_ip":"192.0.2.1"`)
}
