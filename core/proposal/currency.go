package proposal

import (
	"polka/pkg/mtg"

	"github.com/ethereum/go-ethereum/common"
)

// AddCurrencyReq register asset, optionally pinned to a pool
type AddCurrencyReq struct {
	Asset common.Address `json:"asset"`
	Pool  common.Address `json:"pool,omitempty"`
}

// MarshalBinary marshal req to binary
func (r AddCurrencyReq) MarshalBinary() ([]byte, error) {
	return mtg.Encode(r.Asset, r.Pool)
}

// UnmarshalBinary unmarshal bytes
func (r *AddCurrencyReq) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &r.Asset, &r.Pool)
	return err
}

// RemoveCurrencyReq drop asset
type RemoveCurrencyReq struct {
	Asset common.Address `json:"asset"`
}

// MarshalBinary marshal req to binary
func (r RemoveCurrencyReq) MarshalBinary() ([]byte, error) {
	return mtg.Encode(r.Asset)
}

// UnmarshalBinary unmarshal bytes
func (r *RemoveCurrencyReq) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &r.Asset)
	return err
}
