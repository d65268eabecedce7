package dependency

import (
	"context"

	"github.com/kingfoodmart/kfm-insights/internal/dto"
	"github.com/kingfoodmart/kfm-insights/internal/entity"
)

type (
	// Source is the document-store adapter. It returns raw product
	// records already pre-filtered to 0 < price < 1e9 and with the
	// movement list pre-truncated to at most 100 entries per product.
	// The engine assumes nothing beyond that contract.
	Source interface {
		FetchProducts(ctx context.Context) ([]dto.ProductDoc, error)
		// Identity names the source (database/collection); it keys the
		// snapshot cache.
		Identity() string
		Close(ctx context.Context) error
	}

	// SnapshotCache returns the current immutable snapshot, refetching
	// and rebuilding it when the TTL has expired. The returned snapshot
	// is shared read-only across sessions and must not be mutated.
	SnapshotCache interface {
		Get(ctx context.Context) (*entity.Snapshot, error)
		Invalidate()
	}
)
