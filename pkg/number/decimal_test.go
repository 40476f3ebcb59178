package number

import (
	"math/big"
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestUnits(t *testing.T) {
	amount, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FromUnits(amount, 18).String())
	assert.Equal(t, amount.String(), ToUnits(Decimal("1.5"), 18).String())
	assert.Equal(t, "1234", ToUnits(Decimal("1.2349"), 3).String())
	assert.Equal(t, "0", FromUnits(nil, 6).String())
}

func TestMulDiv(t *testing.T) {
	assert.Equal(t, "16", MulDiv(big.NewInt(50), big.NewInt(1), big.NewInt(3)).String())
	assert.Equal(t, "1000000", Pow10(6).String())
}
