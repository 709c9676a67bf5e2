package content

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/folio-cms/folio/internal/asset"
)

const (
	opUpload  = "upload"
	opDestroy = "destroy"

	resultOK      = "ok"
	resultError   = "error"
	resultMissing = "missing"
)

var assetOperations = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "folio_asset_operations_total",
	Help: "Calls to the media host by operation, resource kind and result.",
}, []string{"operation", "kind", "result"})

func countAsset(op string, kind asset.Kind, result string) {
	assetOperations.WithLabelValues(op, string(kind), result).Inc()
}
