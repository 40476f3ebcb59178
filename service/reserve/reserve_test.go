package reserve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullReserves(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pools", r.URL.Path)

		// first attempt fails, the retry succeeds
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		_, _ = w.Write([]byte(`[
			{"address":"0x00000000000000000000000000000000000000f1","token0":"0x0000000000000000000000000000000000000001","token1":"0x0000000000000000000000000000000000000002","reserve0":"1000000000000000000000","reserve1":"3000000000000","updated_at":1700000000},
			{"address":"not an address","token0":"0x01","token1":"0x02","reserve0":"1","reserve1":"1","updated_at":1700000000},
			{"address":"0x00000000000000000000000000000000000000f2","token0":"0x0000000000000000000000000000000000000001","token1":"0x0000000000000000000000000000000000000003","reserve0":"-1","reserve1":"1","updated_at":1700000000}
		]`))
	}))
	defer srv.Close()

	pools, err := New(srv.URL).PullReserves(context.Background())
	require.Nil(t, err)
	require.Len(t, pools, 1)
	assert.Equal(t, common.HexToAddress("0xf1"), pools[0].Address)
	assert.Equal(t, "3000000000000", pools[0].Reserve1.String())
	assert.Equal(t, int64(1700000000), pools[0].UpdatedAt.Unix())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPullReservesDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).PullReserves(context.Background())
	assert.NotNil(t, err)
}
