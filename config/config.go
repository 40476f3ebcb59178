package config

import (
	"errors"
	"fmt"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	configUtil "github.com/fox-one/pkg/config"
)

const (
	defaultPoolMaxAge = 10 * time.Minute
	defaultInterval   = time.Minute
)

// Load load config file, env vars prefixed with POLKA override file values
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("POLKA")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return Validate(config)
}

func defaults(cfg *core.Config) {
	if cfg.App.PoolMaxAge == 0 {
		cfg.App.PoolMaxAge = defaultPoolMaxAge
	}

	if cfg.PriceOracle.Interval <= 0 {
		cfg.PriceOracle.Interval = defaultInterval
	}

	for idx, l := range cfg.Ledgers {
		if l.Name == "" {
			cfg.Ledgers[idx].Name = l.Kind.String()
		}
	}
}

// Validate check addresses and the multisig quorum
func Validate(cfg *core.Config) error {
	if len(cfg.MultiSig.Owners) == 0 {
		return errors.New("config: multisig owners required")
	}

	if t := cfg.MultiSig.Threshold; t < 1 || t > len(cfg.MultiSig.Owners) {
		return fmt.Errorf("config: multisig threshold %d out of range [1, %d]", t, len(cfg.MultiSig.Owners))
	}

	addrs := map[string]string{
		"app.native_asset": cfg.App.NativeAsset,
		"app.stable_asset": cfg.App.StableAsset,
		"multisig.address": cfg.MultiSig.Address,
		"registry.address": cfg.Registry.Address,
	}

	for idx, o := range cfg.MultiSig.Owners {
		addrs[fmt.Sprintf("multisig.owners[%d]", idx)] = o
	}

	for idx, c := range cfg.Registry.Currencies {
		addrs[fmt.Sprintf("registry.currencies[%d].asset", idx)] = c.Asset
		if c.Pool != "" {
			addrs[fmt.Sprintf("registry.currencies[%d].pool", idx)] = c.Pool
		}
	}

	names := map[string]bool{}
	for idx, l := range cfg.Ledgers {
		switch l.Kind {
		case core.ProductKindMSO, core.ProductKindP4L, core.ProductKindCover:
		default:
			return fmt.Errorf("config: ledgers[%d] unknown kind %q", idx, l.Kind)
		}

		if names[l.Name] {
			return fmt.Errorf("config: duplicate ledger %q", l.Name)
		}
		names[l.Name] = true

		addrs[fmt.Sprintf("ledgers[%d].address", idx)] = l.Address
		addrs[fmt.Sprintf("ledgers[%d].trusted_signer", idx)] = l.TrustedSigner
		addrs[fmt.Sprintf("ledgers[%d].payout", idx)] = l.Payout
	}

	for key, v := range addrs {
		if !common.IsHexAddress(v) {
			return fmt.Errorf("config: %s %q is not an address", key, v)
		}
	}

	return nil
}
