package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var executionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "multisig_executions_total",
	Help: "Number of quorum executions by result",
}, []string{"result"})
