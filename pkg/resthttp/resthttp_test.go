package resthttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace", r.Header.Get(headerKeyRequestID))

		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"name":"polka"}`))
		case "/json":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	var body struct {
		Name string `json:"name"`
	}
	resp, err := WithRequestID(ctx, "trace").Get(srv.URL + "/ok")
	require.Nil(t, err)
	require.Nil(t, ParseResponse(resp, &body))
	assert.Equal(t, "polka", body.Name)

	resp, err = WithRequestID(ctx, "trace").Get(srv.URL + "/json")
	require.Nil(t, err)
	var e *Error
	require.True(t, errors.As(ParseResponse(resp, &body), &e))
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
	assert.Equal(t, "not found", e.Message)

	resp, err = WithRequestID(ctx, "trace").Get(srv.URL + "/text")
	require.Nil(t, err)
	require.True(t, errors.As(ParseResponse(resp, nil), &e))
	assert.Equal(t, "bad gateway", e.Message)
}
