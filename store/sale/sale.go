package sale

import (
	"context"
	"math/big"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type sale struct {
	ID          int64           `sql:"PRIMARY_KEY" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	TraceID     string          `sql:"size:36" json:"trace_id"`
	Ledger      string          `sql:"size:42" json:"ledger"`
	SaleID      int64           `json:"sale_id"`
	Kind        string          `sql:"size:16" json:"kind"`
	Buyer       string          `sql:"size:42" json:"buyer"`
	Asset       string          `sql:"size:42" json:"asset"`
	Amount      decimal.Decimal `sql:"type:decimal(78,0)" json:"amount"`
	PriceUSD    decimal.Decimal `sql:"type:decimal(78,0)" json:"price_usd"`
	ExtraFeeUSD decimal.Decimal `sql:"type:decimal(78,0)" json:"extra_fee_usd"`
	PriceNative decimal.Decimal `sql:"type:decimal(78,0)" json:"price_native"`
	Digest      string          `sql:"size:66" json:"digest"`
	Product     types.JSONText  `sql:"type:varchar(2048)" json:"product"`
}

func (sale) TableName() string {
	return "sales"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(sale{})

		if err := tx.AutoMigrate(sale{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_sales_trace", "trace_id").Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_sales_ledger_sale", "ledger", "sale_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new sale store
func New(db *db.DB) core.SaleStore {
	return &saleStore{db: db}
}

type saleStore struct {
	db *db.DB
}

func toDecimal(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, 0)
}

func fromCore(s *core.Sale) *sale {
	return &sale{
		CreatedAt:   s.CreatedAt,
		TraceID:     s.TraceID,
		Ledger:      s.Ledger.Hex(),
		SaleID:      s.ID,
		Kind:        s.Kind.String(),
		Buyer:       s.Buyer.Hex(),
		Asset:       s.Asset.Hex(),
		Amount:      toDecimal(s.Amount),
		PriceUSD:    toDecimal(s.PriceUSD),
		ExtraFeeUSD: toDecimal(s.ExtraFeeUSD),
		PriceNative: toDecimal(s.PriceNative),
		Digest:      s.Digest.Hex(),
		Product:     s.Product,
	}
}

func (s *sale) toCore() *core.Sale {
	out := &core.Sale{
		ID:          s.SaleID,
		TraceID:     s.TraceID,
		Ledger:      common.HexToAddress(s.Ledger),
		Kind:        core.ProductKind(s.Kind),
		Buyer:       common.HexToAddress(s.Buyer),
		Asset:       common.HexToAddress(s.Asset),
		Amount:      s.Amount.BigInt(),
		PriceUSD:    s.PriceUSD.BigInt(),
		ExtraFeeUSD: s.ExtraFeeUSD.BigInt(),
		Digest:      common.HexToHash(s.Digest),
		Product:     s.Product,
		CreatedAt:   s.CreatedAt,
	}

	if s.PriceNative.IsPositive() {
		out.PriceNative = s.PriceNative.BigInt()
	}

	return out
}

func (s *saleStore) Create(ctx context.Context, in *core.Sale) error {
	row := fromCore(in)
	return s.db.Update().Where("trace_id = ?", row.TraceID).FirstOrCreate(row).Error
}

func (s *saleStore) Find(ctx context.Context, ledger common.Address, id int64) (*core.Sale, bool, error) {
	var row sale
	if err := s.db.View().Where("ledger = ? AND sale_id = ?", ledger.Hex(), id).First(&row).Error; err != nil {
		return nil, gorm.IsRecordNotFoundError(err), err
	}

	return row.toCore(), false, nil
}

func (s *saleStore) List(ctx context.Context, ledger common.Address, fromID int64, limit int) ([]*core.Sale, error) {
	var rows []*sale
	if err := s.db.View().Where("ledger = ? AND sale_id >= ?", ledger.Hex(), fromID).Order("sale_id").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]*core.Sale, len(rows))
	for idx, row := range rows {
		sales[idx] = row.toCore()
	}

	return sales, nil
}
