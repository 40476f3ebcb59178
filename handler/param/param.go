// Package param binds request parameters into structs
package param

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/spf13/cast"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode query parameters into v, and the json body as well for
// requests that carry one
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}

	if r.ContentLength > 0 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}
	}

	return nil
}

// Int64 url param as int64
func Int64(r *http.Request, key string) (int64, error) {
	v, err := cast.ToInt64E(chi.URLParam(r, key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %v", core.ErrInvalidPayload, key, err)
	}

	return v, nil
}

// Amount non negative integer in base units, empty is zero
func Amount(key, v string) (*big.Int, error) {
	if v == "" {
		return new(big.Int), nil
	}

	amount, ok := new(big.Int).SetString(v, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s must be a non negative integer", core.ErrInvalidPayload, key)
	}

	return amount, nil
}

// Address hex address
func Address(key, v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("%w: invalid %s %q", core.ErrInvalidPayload, key, v)
	}

	return common.HexToAddress(v), nil
}

// Bytes 0x prefixed hex, empty is nil
func Bytes(key, v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}

	data, err := hexutil.Decode(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %v", core.ErrInvalidPayload, key, err)
	}

	return data, nil
}

// Page listing window, limit is clamped to [1, 500] and defaults to 100
type Page struct {
	From  int64 `json:"from"`
	Limit int   `json:"limit"`
}

// Normalize apply limit defaults
func (p *Page) Normalize() {
	switch {
	case p.Limit <= 0:
		p.Limit = 100
	case p.Limit > 500:
		p.Limit = 500
	}

	if p.From < 0 {
		p.From = 0
	}
}
