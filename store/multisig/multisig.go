package multisig

import (
	"context"
	"database/sql"
	"math/big"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type transaction struct {
	ID            int64           `sql:"PRIMARY_KEY" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int64           `json:"version"`
	Wallet        string          `sql:"size:42" json:"wallet"`
	TxID          int64           `json:"tx_id"`
	Submitter     string          `sql:"size:42" json:"submitter"`
	Target        string          `sql:"size:42" json:"target"`
	Value         decimal.Decimal `sql:"type:decimal(78,0)" json:"value"`
	Payload       string          `sql:"type:text" json:"payload"`
	Executed      bool            `json:"executed"`
	Confirmations pq.StringArray  `sql:"type:varchar(1024)" json:"confirmations"`
	LastError     string          `sql:"size:512" json:"last_error"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	ExecutedAt    sql.NullTime    `json:"executed_at"`
}

func (transaction) TableName() string {
	return "multisig_transactions"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(transaction{})

		if err := tx.AutoMigrate(transaction{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_multisig_transactions_wallet_tx", "wallet", "tx_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new multisig transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{db: db}
}

type transactionStore struct {
	db *db.DB
}

func fromCore(wallet common.Address, t *core.Transaction) *transaction {
	value := decimal.Zero
	if t.Value != nil {
		value = decimal.NewFromBigInt(t.Value, 0)
	}

	confirmations := make(pq.StringArray, len(t.Confirmations))
	for idx, c := range t.Confirmations {
		confirmations[idx] = c.Hex()
	}

	row := &transaction{
		Wallet:        wallet.Hex(),
		TxID:          t.ID,
		Submitter:     t.Submitter.Hex(),
		Target:        t.Target.Hex(),
		Value:         value,
		Payload:       hexutil.Encode(t.Payload),
		Executed:      t.Executed,
		Confirmations: confirmations,
		LastError:     t.LastError,
		SubmittedAt:   t.CreatedAt,
	}

	if !t.ExecutedAt.IsZero() {
		row.ExecutedAt = sql.NullTime{Time: t.ExecutedAt, Valid: true}
	}

	return row
}

func (t *transaction) toCore() *core.Transaction {
	payload, _ := hexutil.Decode(t.Payload)

	out := &core.Transaction{
		ID:        t.TxID,
		Submitter: common.HexToAddress(t.Submitter),
		Target:    common.HexToAddress(t.Target),
		Value:     t.Value.BigInt(),
		Payload:   payload,
		Executed:  t.Executed,
		LastError: t.LastError,
		CreatedAt: t.SubmittedAt,
	}

	for _, c := range t.Confirmations {
		out.Confirmations = append(out.Confirmations, common.HexToAddress(c))
	}

	if t.ExecutedAt.Valid {
		out.ExecutedAt = t.ExecutedAt.Time
	}

	if out.Value == nil {
		out.Value = new(big.Int)
	}

	return out
}

func toUpdateParams(row *transaction) map[string]interface{} {
	return map[string]interface{}{
		"executed":      row.Executed,
		"confirmations": row.Confirmations,
		"last_error":    row.LastError,
		"executed_at":   row.ExecutedAt,
	}
}

func (s *transactionStore) Save(ctx context.Context, wallet common.Address, t *core.Transaction) error {
	row := fromCore(wallet, t)

	return s.db.Tx(func(tx *db.DB) error {
		var existing transaction
		if err := tx.Update().Where("wallet = ? AND tx_id = ?", row.Wallet, row.TxID).First(&existing).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return tx.Update().Create(row).Error
			}

			return err
		}

		updates := toUpdateParams(row)
		updates["version"] = existing.Version + 1

		r := tx.Update().Model(&existing).Where("version = ?", existing.Version).Updates(updates)
		if r.Error != nil {
			return r.Error
		}

		if r.RowsAffected == 0 {
			return db.ErrOptimisticLock
		}

		return nil
	})
}

func (s *transactionStore) Find(ctx context.Context, wallet common.Address, id int64) (*core.Transaction, bool, error) {
	var row transaction
	if err := s.db.View().Where("wallet = ? AND tx_id = ?", wallet.Hex(), id).First(&row).Error; err != nil {
		return nil, gorm.IsRecordNotFoundError(err), err
	}

	return row.toCore(), false, nil
}

func (s *transactionStore) List(ctx context.Context, wallet common.Address, fromID int64, limit int) ([]*core.Transaction, error) {
	var rows []*transaction
	if err := s.db.View().Where("wallet = ? AND tx_id >= ?", wallet.Hex(), fromID).Order("tx_id").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	txs := make([]*core.Transaction, len(rows))
	for idx, row := range rows {
		txs[idx] = row.toCore()
	}

	return txs, nil
}
