package main

import (
	"github.com/hibiken/asynq"

	consistencyJob "articles-backend/internal/domains/consistency/job"
	ownerJob "articles-backend/internal/domains/owner/job"
	"articles-backend/internal/shared"
	"articles-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reconcileItemCounts *consistencyJob.ReconcileItemCountsHandler
	warmOwnerViews      *ownerJob.WarmOwnerViewsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reconcileItemCounts: consistencyJob.NewReconcileItemCountsHandler(c.OwnerRepo),
		warmOwnerViews:      ownerJob.NewWarmOwnerViewsHandler(c.OwnerRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeReconcileItemCounts, h.reconcileItemCounts.ProcessTask)
	mux.HandleFunc(shared.TypeWarmOwnerViews, h.warmOwnerViews.ProcessTask)
}
