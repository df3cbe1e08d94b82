package requests_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"cryptoportfolio/src/utils"
	"cryptoportfolio/src/utils/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "v", r.Header.Get("X-Test"))
			assert.Equal(t, "1", r.URL.Query().Get("a"))
			_, _ = w.Write([]byte(`{"value": 42}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer ts.Close()

	service := requests.NewExternalAPIService(time.Second, map[string]string{"X-Test": "v"})
	ctx := context.Background()

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, service.GetJSON(ctx, ts.URL+"/ok", url.Values{"a": {"1"}}, &out))
	assert.Equal(t, 42, out.Value)

	err := service.GetJSON(ctx, ts.URL+"/missing", nil, &out)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = service.GetJSON(ctx, ts.URL+"/down", nil, &out)
	assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
}
