package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// CallTarget a component reachable by address, e.g. from a queued multisig call
	CallTarget interface {
		Address() common.Address
		// Invoke decode payload and run the call on behalf of from. value is the
		// native amount the caller authorizes the target to collect
		Invoke(ctx context.Context, from common.Address, value *big.Int, payload []byte) error
	}

	// Dispatcher routes calls to targets
	Dispatcher interface {
		Call(ctx context.Context, from, to common.Address, value *big.Int, payload []byte) error
	}
)
