package auth

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"polka/handler/request"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, r *http.Request) (common.Address, bool, []byte) {
	var (
		caller common.Address
		ok     bool
		body   []byte
	)

	h := HandleAuthentication()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok = request.NewContext(r.Context()).GetCaller()
		data, err := io.ReadAll(r.Body)
		require.Nil(t, err)
		body = data
	}))

	h.ServeHTTP(httptest.NewRecorder(), r)
	return caller, ok, body
}

func TestHandleAuthentication(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.Nil(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	body := []byte(`{"revoke_others":true}`)
	newRequest := func() *http.Request {
		return httptest.NewRequest(http.MethodPost, "/api/multisig/transactions/1/confirm", bytes.NewReader(body))
	}

	t.Run("signed", func(t *testing.T) {
		r := newRequest()
		h, err := Sign(key, r.Method, r.URL.Path, time.Now(), body)
		require.Nil(t, err)
		r.Header = h

		caller, ok, got := serve(t, r)
		require.True(t, ok)
		assert.Equal(t, addr, caller)
		assert.Equal(t, body, got)
	})

	t.Run("unsigned", func(t *testing.T) {
		_, ok, got := serve(t, newRequest())
		assert.False(t, ok)
		assert.Equal(t, body, got)
	})

	t.Run("tampered body", func(t *testing.T) {
		r := newRequest()
		h, err := Sign(key, r.Method, r.URL.Path, time.Now(), []byte(`{"revoke_others":false}`))
		require.Nil(t, err)
		r.Header = h

		caller, ok, _ := serve(t, r)
		assert.True(t, !ok || caller != addr)
	})

	t.Run("other path", func(t *testing.T) {
		r := newRequest()
		h, err := Sign(key, r.Method, "/api/multisig/transactions/2/confirm", time.Now(), body)
		require.Nil(t, err)
		r.Header = h

		caller, ok, _ := serve(t, r)
		assert.True(t, !ok || caller != addr)
	})

	t.Run("expired", func(t *testing.T) {
		r := newRequest()
		h, err := Sign(key, r.Method, r.URL.Path, time.Now().Add(-2*MaxClockSkew), body)
		require.Nil(t, err)
		r.Header = h

		_, ok, got := serve(t, r)
		assert.False(t, ok)
		assert.Equal(t, body, got)
	})
}
