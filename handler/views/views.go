package views

import (
	"math/big"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type (
	// Currency currency view
	Currency struct {
		Asset string `json:"asset"`
		Pool  string `json:"pool,omitempty"`
	}

	// Pool pool view
	Pool struct {
		Address   string          `json:"address"`
		Token0    string          `json:"token0"`
		Token1    string          `json:"token1"`
		Reserve0  decimal.Decimal `json:"reserve0"`
		Reserve1  decimal.Decimal `json:"reserve1"`
		UpdatedAt time.Time       `json:"updated_at"`
	}

	// Price amount owed view
	Price struct {
		Asset  string          `json:"asset"`
		USD    decimal.Decimal `json:"usd"`
		Amount decimal.Decimal `json:"amount"`
	}

	// Ledger purchase ledger view
	Ledger struct {
		Name      string `json:"name"`
		Address   string `json:"address"`
		Kind      string `json:"kind"`
		SaleCount int64  `json:"sale_count"`
	}

	// Sale sale view
	Sale struct {
		ID          int64           `json:"id"`
		TraceID     string          `json:"trace_id"`
		Ledger      string          `json:"ledger"`
		Kind        string          `json:"kind"`
		Buyer       string          `json:"buyer"`
		Asset       string          `json:"asset"`
		Amount      decimal.Decimal `json:"amount"`
		PriceUSD    decimal.Decimal `json:"price_usd"`
		ExtraFeeUSD decimal.Decimal `json:"extra_fee_usd"`
		Digest      string          `json:"digest"`
		Product     types.JSONText  `json:"product,omitempty"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	// Balance bank balance view, allowance is set when a spender is asked for
	Balance struct {
		Asset     string           `json:"asset"`
		Owner     string           `json:"owner"`
		Balance   decimal.Decimal  `json:"balance"`
		Spender   string           `json:"spender,omitempty"`
		Allowance *decimal.Decimal `json:"allowance,omitempty"`
	}

	// MultiSig executor view
	MultiSig struct {
		Address   string   `json:"address"`
		Owners    []string `json:"owners"`
		Threshold int      `json:"threshold"`
	}

	// Transaction multisig transaction view
	Transaction struct {
		ID            int64           `json:"id"`
		Submitter     string          `json:"submitter"`
		Target        string          `json:"target"`
		Value         decimal.Decimal `json:"value"`
		Payload       string          `json:"payload"`
		Executed      bool            `json:"executed"`
		Confirmations []string        `json:"confirmations"`
		LastError     string          `json:"last_error,omitempty"`
		CreatedAt     time.Time       `json:"created_at"`
		ExecutedAt    *time.Time      `json:"executed_at,omitempty"`
	}
)

func amount(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, 0)
}

func hexes(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for idx, a := range addrs {
		out[idx] = a.Hex()
	}

	return out
}

// CurrencyView currency view
func CurrencyView(c *core.Currency) Currency {
	v := Currency{Asset: c.Asset.Hex()}
	if c.HasPool() {
		v.Pool = c.Pool.Hex()
	}

	return v
}

// PoolView pool view
func PoolView(p *core.Pool) Pool {
	return Pool{
		Address:   p.Address.Hex(),
		Token0:    p.Token0.Hex(),
		Token1:    p.Token1.Hex(),
		Reserve0:  amount(p.Reserve0),
		Reserve1:  amount(p.Reserve1),
		UpdatedAt: p.UpdatedAt,
	}
}

// PriceView price view
func PriceView(asset common.Address, usd, owed *big.Int) Price {
	return Price{
		Asset:  asset.Hex(),
		USD:    amount(usd),
		Amount: amount(owed),
	}
}

// LedgerView ledger view
func LedgerView(name string, l core.PurchaseService) Ledger {
	return Ledger{
		Name:      name,
		Address:   l.Address().Hex(),
		Kind:      l.Kind().String(),
		SaleCount: l.SaleCount(),
	}
}

// SaleView sale view
func SaleView(s *core.Sale) Sale {
	return Sale{
		ID:          s.ID,
		TraceID:     s.TraceID,
		Ledger:      s.Ledger.Hex(),
		Kind:        s.Kind.String(),
		Buyer:       s.Buyer.Hex(),
		Asset:       s.Asset.Hex(),
		Amount:      amount(s.Amount),
		PriceUSD:    amount(s.PriceUSD),
		ExtraFeeUSD: amount(s.ExtraFeeUSD),
		Digest:      s.Digest.Hex(),
		Product:     s.Product,
		CreatedAt:   s.CreatedAt,
	}
}

// BalanceView balance view
func BalanceView(asset, owner common.Address, balance *big.Int) Balance {
	return Balance{
		Asset:   asset.Hex(),
		Owner:   owner.Hex(),
		Balance: amount(balance),
	}
}

// WithAllowance balance view with the allowance of spender
func (b Balance) WithAllowance(spender common.Address, allowance *big.Int) Balance {
	v := amount(allowance)
	b.Spender = spender.Hex()
	b.Allowance = &v
	return b
}

// MultiSigView multisig view
func MultiSigView(m core.MultiSigService) MultiSig {
	return MultiSig{
		Address:   m.Address().Hex(),
		Owners:    hexes(m.Owners()),
		Threshold: m.Threshold(),
	}
}

// TransactionView transaction view
func TransactionView(t *core.Transaction) Transaction {
	v := Transaction{
		ID:            t.ID,
		Submitter:     t.Submitter.Hex(),
		Target:        t.Target.Hex(),
		Value:         amount(t.Value),
		Payload:       hexutil.Encode(t.Payload),
		Executed:      t.Executed,
		Confirmations: hexes(t.Confirmations),
		LastError:     t.LastError,
		CreatedAt:     t.CreatedAt,
	}

	if !t.ExecutedAt.IsZero() {
		at := t.ExecutedAt
		v.ExecutedAt = &at
	}

	return v
}
