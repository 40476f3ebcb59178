package product

import (
	"math/big"
	"testing"
	"time"

	"polka/core"
	"polka/pkg/quote"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSODigestLayout(t *testing.T) {
	p := &MSO{
		Name:           "hello",
		PriceUSD:       big.NewInt(30),
		Period:         big.NewInt(5),
		ConciergePrice: big.NewInt(20),
	}

	expect := quote.NewPacker().String("hello").Uint64(30).Uint64(5).Uint64(20).Digest()
	assert.Equal(t, expect, p.Digest())
	assert.Equal(t, "50", p.Charge().TotalUSD().String())
	assert.False(t, p.Charge().IsNative())

	// any single field perturbation changes the digest
	p.PriceUSD = big.NewInt(31)
	assert.NotEqual(t, expect, p.Digest())
}

func TestP4LDigestLayout(t *testing.T) {
	p := &P4L{
		Device:     "My Device",
		Brand:      "My Brand",
		Value:      big.NewInt(50),
		PurchMonth: big.NewInt(6),
		DurPlan:    big.NewInt(6),
	}

	expect := quote.NewPacker().String("My Device").String("My Brand").Uint64(50).Uint64(6).Uint64(6).Digest()
	assert.Equal(t, expect, p.Digest())
	assert.Equal(t, "50", p.Charge().TotalUSD().String())
}

func TestDecode(t *testing.T) {
	p := &P4L{
		Device:     "My Device",
		Brand:      "My Brand",
		Value:      big.NewInt(50),
		PurchMonth: big.NewInt(6),
		DurPlan:    big.NewInt(6),
	}

	data, err := p.MarshalBinary()
	require.Nil(t, err)

	decoded, err := Decode(core.ProductKindP4L, data)
	require.Nil(t, err)
	assert.Equal(t, p.Digest(), decoded.Digest())

	_, err = Decode(core.ProductKindMSO, data[:4])
	assert.ErrorIs(t, err, core.ErrInvalidPayload)

	_, err = New("unknown")
	assert.NotNil(t, err)
}

func TestEmptyStringFields(t *testing.T) {
	now := time.Now()

	m := &MSO{PriceUSD: big.NewInt(30), Period: big.NewInt(5), ConciergePrice: big.NewInt(0)}
	assert.Nil(t, m.Validate(now))

	p := &P4L{Value: big.NewInt(100), PurchMonth: big.NewInt(1), DurPlan: big.NewInt(12)}
	assert.Nil(t, p.Validate(now))

	m.PriceUSD = big.NewInt(-1)
	assert.NotNil(t, m.Validate(now))
}

func TestCoverValidate(t *testing.T) {
	now := time.Unix(1636726779, 0)
	p := &Cover{
		ContractAddress: common.HexToAddress("0x0000000000000000000000000000000000000005"),
		CoverAsset:      common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"),
		SumAssured:      big.NewInt(1),
		CoverPeriod:     big.NewInt(111),
		Price:           big.NewInt(66026290216319654),
		PriceInNXM:      big.NewInt(0),
		ExpiresAt:       now.Unix() + 60,
		GeneratedAt:     now.UnixMilli(),
	}

	require.Nil(t, p.Validate(now))
	assert.ErrorIs(t, p.Validate(now.Add(2*time.Minute)), core.ErrQuoteExpired)
	assert.True(t, p.Charge().IsNative())

	p.Price = big.NewInt(-1)
	assert.ErrorIs(t, p.Validate(now), core.ErrInvalidPayload)
}

func TestCoverFromQuote(t *testing.T) {
	q := &core.CoverQuote{
		Currency:    "ETH",
		Period:      "111",
		Amount:      "1",
		Price:       "66026290216319654",
		PriceInNXM:  "1726147109619947834",
		ExpiresAt:   1641910780,
		GeneratedAt: 1636726779229,
		Contract:    "0x0000000000000000000000000000000000000005",
		V:           27,
		R:           "0xd8876b4e4edcf6a8504f94d4ddd373343954a3727713ee09d04e7fea3ffad1b2",
		S:           "0x4048ec8fde7226cdd60c1911c0e1bd0eb8013a50f67b517201c29e2150aa4c7b",
	}

	cover, sig, err := CoverFromQuote(q, common.Address{}, big.NewInt(1), 0)
	require.Nil(t, err)
	assert.Equal(t, "111", cover.CoverPeriod.String())
	assert.Equal(t, "66026290216319654", cover.Price.String())
	require.Len(t, sig, quote.SignatureLength)
	assert.Equal(t, byte(27), sig[64])

	q.Price = "not a number"
	_, _, err = CoverFromQuote(q, common.Address{}, big.NewInt(1), 0)
	assert.NotNil(t, err)
}
