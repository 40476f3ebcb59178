package core

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
)

// Config polka config
type Config struct {
	App          App               `json:"app"`
	DB           db.Config         `json:"db"`
	MultiSig     MultiSig          `json:"multisig"`
	Registry     Registry          `json:"registry"`
	Ledgers      []LedgerConfig    `json:"ledgers"`
	PriceOracle  PriceOracleConfig `json:"price_oracle"`
	QuoteService QuoteConfig       `json:"quote_service"`
}

// App app config
type App struct {
	NativeAsset    string        `json:"native_asset"`
	StableAsset    string        `json:"stable_asset"`
	StableDecimals int32         `json:"stable_decimals"`
	PoolMaxAge     time.Duration `json:"pool_max_age"`
	// QuoteReuse accept a signed quote more than once
	QuoteReuse bool `json:"quote_reuse"`
}

// MultiSig multisig executor config
type MultiSig struct {
	Address   string   `json:"address"`
	Owners    []string `json:"owners"`
	Threshold int      `json:"threshold"`
}

// Registry currency registry config
type Registry struct {
	Address    string           `json:"address"`
	Currencies []CurrencyConfig `json:"currencies"`
}

// CurrencyConfig currency registered at startup
type CurrencyConfig struct {
	Asset string `json:"asset"`
	Pool  string `json:"pool"`
}

// LedgerConfig purchase ledger config
type LedgerConfig struct {
	Name          string      `json:"name"`
	Kind          ProductKind `json:"kind"`
	Address       string      `json:"address"`
	TrustedSigner string      `json:"trusted_signer"`
	Payout        string      `json:"payout"`
}

// PriceOracleConfig reserve feed config
type PriceOracleConfig struct {
	EndPoint string        `json:"end_point"`
	Interval time.Duration `json:"interval"`
}

// QuoteConfig cover quote service config
type QuoteConfig struct {
	EndPoint string `json:"end_point"`
	Origin   string `json:"origin"`
}

// OwnerAddresses multisig owners as addresses
func (m MultiSig) OwnerAddresses() []common.Address {
	owners := make([]common.Address, len(m.Owners))
	for idx, o := range m.Owners {
		owners[idx] = common.HexToAddress(o)
	}

	return owners
}

// Ledger find ledger config by name
func (c *Config) Ledger(name string) (LedgerConfig, bool) {
	for _, l := range c.Ledgers {
		if l.Name == name {
			return l, true
		}
	}

	return LedgerConfig{}, false
}
