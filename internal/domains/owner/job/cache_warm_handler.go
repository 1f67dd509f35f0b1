package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"articles-backend/internal/domains/owner"
	"articles-backend/internal/shared/query"
	"articles-backend/pkg/logger"
)

// ================================================
// WARM OWNER VIEWS JOB HANDLER
// ================================================

// WarmOwnerViewsHandler re-populates the cached owner-with-items views
// for the owners carrying the most items, so the heaviest aggregated
// reads rarely hit the database cold.
type WarmOwnerViewsHandler struct {
	ownerRepo owner.Repository
}

func NewWarmOwnerViewsHandler(ownerRepo owner.Repository) *WarmOwnerViewsHandler {
	return &WarmOwnerViewsHandler{ownerRepo: ownerRepo}
}

func (h *WarmOwnerViewsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	logger.Info("Starting WarmOwnerViews job", map[string]interface{}{})

	entries, err := h.ownerRepo.List(ctx, query.Shape{
		SortColumn: "item_count",
		Descending: true,
		Page:       query.DefaultPage,
		Limit:      query.MaxLimit,
	})
	if err != nil {
		return fmt.Errorf("list owners for warmup: %w", err)
	}

	warmed := 0
	for _, e := range entries {
		if _, err := h.ownerRepo.GetWithItems(ctx, e.ID); err != nil {
			// One cold view failing does not stop the sweep
			logger.Error("Failed to warm owner view", err)
			continue
		}
		warmed++
	}

	logger.Info("Completed WarmOwnerViews job", map[string]interface{}{
		"warmed_count": warmed,
	})

	return nil
}
