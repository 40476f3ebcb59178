package id

import (
	"crypto/md5"
	"io"
	"strconv"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom new traceID from text
func TraceIDFrom(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// SaleTraceID stable trace id of the n-th sale of a ledger
func SaleTraceID(ledger string, n int64) string {
	return foxuuid.Modify(TraceIDFrom(ledger), "sale:"+strconv.FormatInt(n, 10))
}
