package pool

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type pool struct {
	ID        int64           `sql:"PRIMARY_KEY" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int64           `json:"version"`
	Address   string          `sql:"size:42" json:"address"`
	Token0    string          `sql:"size:42" json:"token0"`
	Token1    string          `sql:"size:42" json:"token1"`
	Reserve0  decimal.Decimal `sql:"type:decimal(78,0)" json:"reserve0"`
	Reserve1  decimal.Decimal `sql:"type:decimal(78,0)" json:"reserve1"`
	SyncedAt  time.Time       `json:"synced_at"`
}

func (pool) TableName() string {
	return "pools"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(pool{})

		if err := tx.AutoMigrate(pool{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_pools_address", "address").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_pools_pair", "token0", "token1").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new pool store
func New(db *db.DB) core.PoolStore {
	return &poolStore{db: db}
}

type poolStore struct {
	db *db.DB
}

func fromCore(p *core.Pool) *pool {
	token0, token1 := core.SortTokens(p.Token0, p.Token1)
	reserve0, reserve1 := p.Reserve0, p.Reserve1
	if token0 != p.Token0 {
		reserve0, reserve1 = reserve1, reserve0
	}

	return &pool{
		Address:  p.Address.Hex(),
		Token0:   token0.Hex(),
		Token1:   token1.Hex(),
		Reserve0: toDecimal(reserve0),
		Reserve1: toDecimal(reserve1),
		SyncedAt: p.UpdatedAt,
	}
}

func (p *pool) toCore() *core.Pool {
	return &core.Pool{
		Address:   common.HexToAddress(p.Address),
		Token0:    common.HexToAddress(p.Token0),
		Token1:    common.HexToAddress(p.Token1),
		Reserve0:  p.Reserve0.BigInt(),
		Reserve1:  p.Reserve1.BigInt(),
		UpdatedAt: p.SyncedAt,
	}
}

func (s *poolStore) Save(ctx context.Context, p *core.Pool) error {
	row := fromCore(p)

	return s.db.Tx(func(tx *db.DB) error {
		var existing pool
		if err := tx.Update().Where("address = ?", row.Address).First(&existing).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return tx.Update().Create(row).Error
			}

			return err
		}

		if !row.SyncedAt.After(existing.SyncedAt) {
			return nil
		}

		updates := map[string]interface{}{
			"token0":    row.Token0,
			"token1":    row.Token1,
			"reserve0":  row.Reserve0,
			"reserve1":  row.Reserve1,
			"synced_at": row.SyncedAt,
			"version":   existing.Version + 1,
		}

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

func (s *poolStore) Find(ctx context.Context, address common.Address) (*core.Pool, error) {
	var p pool
	if err := s.db.View().Where("address = ?", address.Hex()).First(&p).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrPoolNotFound, address.Hex())
		}

		return nil, err
	}

	return p.toCore(), nil
}

func (s *poolStore) FindPair(ctx context.Context, tokenA, tokenB common.Address) (*core.Pool, error) {
	token0, token1 := core.SortTokens(tokenA, tokenB)

	var p pool
	if err := s.db.View().Where("token0 = ? AND token1 = ?", token0.Hex(), token1.Hex()).Order("synced_at DESC").First(&p).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s/%s", core.ErrPoolNotFound, token0.Hex(), token1.Hex())
		}

		return nil, err
	}

	return p.toCore(), nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var rows []*pool
	if err := s.db.View().Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	pools := make([]*core.Pool, len(rows))
	for idx, row := range rows {
		pools[idx] = row.toCore()
	}

	return pools, nil
}

func toDecimal(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, 0)
}
