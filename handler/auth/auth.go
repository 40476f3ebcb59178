package auth

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"polka/handler/request"
	"polka/pkg/quote"
	"polka/service/signer"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fox-one/pkg/logger"
)

const (
	// HeaderTimestamp unix seconds the request was signed at
	HeaderTimestamp = "X-Polka-Timestamp"
	// HeaderSignature hex signature of the request digest
	HeaderSignature = "X-Polka-Signature"

	// MaxClockSkew accepted distance between the signed timestamp and now
	MaxClockSkew = time.Minute
)

// Digest of a signed request. The timestamp packs as a 32 byte word between
// the path and the body
func Digest(method, path string, timestamp int64, body []byte) common.Hash {
	return quote.NewPacker().
		String(method).
		String(path).
		Uint64(uint64(timestamp)).
		String(string(body)).
		Digest()
}

// Sign request headers for method, path and body signed by key at ts
func Sign(key *ecdsa.PrivateKey, method, path string, ts time.Time, body []byte) (http.Header, error) {
	sig, err := quote.Sign(Digest(method, path, ts.Unix(), body), key)
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set(HeaderTimestamp, strconv.FormatInt(ts.Unix(), 10))
	h.Set(HeaderSignature, hexutil.Encode(sig))
	return h, nil
}

// HandleAuthentication recover the caller of signed requests. Unsigned or
// badly signed requests pass through without a caller
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			if r.Header.Get(HeaderSignature) == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := authenticate(r, time.Now())
			if err != nil {
				log.WithError(err).Debugln("authenticate request")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithCaller(caller)))
		}

		return http.HandlerFunc(fn)
	}
}

func authenticate(r *http.Request, now time.Time) (common.Address, error) {
	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return common.Address{}, err
		}
		body = data
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	ts, err := strconv.ParseInt(r.Header.Get(HeaderTimestamp), 10, 64)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	if skew := now.Sub(time.Unix(ts, 0)); skew > MaxClockSkew || skew < -MaxClockSkew {
		return common.Address{}, errors.New("timestamp out of window")
	}

	sig, err := hexutil.Decode(r.Header.Get(HeaderSignature))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature: %w", err)
	}

	return signer.Recover(Digest(r.Method, r.URL.Path, ts, body), sig)
}
