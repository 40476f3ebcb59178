package purchase

import (
	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	saleCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_sales_total",
		Help: "Number of recorded sales",
	}, []string{"kind", "asset"})

	rejectCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_rejections_total",
		Help: "Number of rejected purchases by error",
	}, []string{"kind", "path", "error"})
)

func assetLabel(oracle core.PriceOracle, asset common.Address) string {
	if asset == oracle.NativeAsset() {
		return "native"
	}

	return asset.Hex()
}
