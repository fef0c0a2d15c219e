package recommend

import (
	"context"

	"github.com/kailas-cloud/recopanel/internal/domain/query"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
)

// Recommender is the collaborator contract: one call per submission.
type Recommender interface {
	Recommend(ctx context.Context, p query.Payload) ([]recommendation.Item, error)
}
