package shared

// Task type names for asynq jobs.
const (
	TypeReconcileItemCounts = "consistency:reconcile_item_counts"
	TypeWarmOwnerViews      = "owner:warm_views"
)

// Queue names.
const (
	QueueMaintenance = "maintenance"
	QueueDefault     = "default"
)
