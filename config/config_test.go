package config

import (
	"os"
	"path/filepath"
	"testing"

	"polka/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  native_asset: "0x0000000000000000000000000000000000000001"
  stable_asset: "0x0000000000000000000000000000000000000002"
  stable_decimals: 6
multisig:
  address: "0x00000000000000000000000000000000000000a0"
  owners:
    - "0x00000000000000000000000000000000000000b1"
    - "0x00000000000000000000000000000000000000b2"
  threshold: 2
registry:
  address: "0x00000000000000000000000000000000000000a1"
  currencies:
    - asset: "0x0000000000000000000000000000000000000003"
ledgers:
  - kind: mso
    address: "0x00000000000000000000000000000000000000a2"
    trusted_signer: "0x00000000000000000000000000000000000000c1"
    payout: "0x00000000000000000000000000000000000000c2"
`

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "polka.yaml")
	require.Nil(t, os.WriteFile(file, []byte(sample), 0o600))

	var cfg core.Config
	require.Nil(t, Load(file, &cfg))

	assert.Equal(t, int32(6), cfg.App.StableDecimals)
	assert.Equal(t, defaultPoolMaxAge, cfg.App.PoolMaxAge)
	assert.Equal(t, defaultInterval, cfg.PriceOracle.Interval)
	assert.Equal(t, 2, cfg.MultiSig.Threshold)
	require.Len(t, cfg.Ledgers, 1)
	assert.Equal(t, "mso", cfg.Ledgers[0].Name)

	l, ok := cfg.Ledger("mso")
	assert.True(t, ok)
	assert.Equal(t, core.ProductKindMSO, l.Kind)
}

func valid() *core.Config {
	return &core.Config{
		App: core.App{
			NativeAsset: "0x0000000000000000000000000000000000000001",
			StableAsset: "0x0000000000000000000000000000000000000002",
		},
		MultiSig: core.MultiSig{
			Address:   "0x00000000000000000000000000000000000000a0",
			Owners:    []string{"0x00000000000000000000000000000000000000b1"},
			Threshold: 1,
		},
		Registry: core.Registry{Address: "0x00000000000000000000000000000000000000a1"},
	}
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(valid()))

	cfg := valid()
	cfg.MultiSig.Threshold = 2
	assert.NotNil(t, Validate(cfg))

	cfg = valid()
	cfg.MultiSig.Owners = nil
	assert.NotNil(t, Validate(cfg))

	cfg = valid()
	cfg.App.NativeAsset = "weth"
	assert.NotNil(t, Validate(cfg))

	cfg = valid()
	cfg.Ledgers = []core.LedgerConfig{{Name: "x", Kind: "unknown"}}
	assert.NotNil(t, Validate(cfg))
}
