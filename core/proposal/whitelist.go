package proposal

import (
	"polka/pkg/mtg"

	"github.com/ethereum/go-ethereum/common"
)

// WhiteListReq whitelist req for add and remove
type WhiteListReq struct {
	Consumer common.Address `json:"consumer"`
}

// MarshalBinary marshal whitelist to binary
func (r WhiteListReq) MarshalBinary() ([]byte, error) {
	return mtg.Encode(r.Consumer)
}

// UnmarshalBinary unmarshal whitelist from binary
func (r *WhiteListReq) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &r.Consumer)
	return err
}
