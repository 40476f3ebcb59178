package proposal

import (
	"polka/pkg/mtg"

	"github.com/ethereum/go-ethereum/common"
)

// BuyByNativeReq buy a product with the value attached to the call.
// Product holds the product's own binary encoding
type BuyByNativeReq struct {
	Product   []byte `json:"product"`
	Signature []byte `json:"signature"`
}

// MarshalBinary marshal req to binary
func (r BuyByNativeReq) MarshalBinary() ([]byte, error) {
	return mtg.Encode(r.Product, r.Signature)
}

// UnmarshalBinary unmarshal bytes
func (r *BuyByNativeReq) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &r.Product, &r.Signature)
	return err
}

// BuyByTokenReq buy a product with a registered asset pulled from payer
type BuyByTokenReq struct {
	Product   []byte         `json:"product"`
	Asset     common.Address `json:"asset"`
	Payer     common.Address `json:"payer"`
	Signature []byte         `json:"signature"`
}

// MarshalBinary marshal req to binary
func (r BuyByTokenReq) MarshalBinary() ([]byte, error) {
	return mtg.Encode(r.Product, r.Asset, r.Payer, r.Signature)
}

// UnmarshalBinary unmarshal bytes
func (r *BuyByTokenReq) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &r.Product, &r.Asset, &r.Payer, &r.Signature)
	return err
}
