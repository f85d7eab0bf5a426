// Package scheduler defines the background task types and the asynq client
// and worker around them.
package scheduler

// Task type names shared by the enqueuing client and the worker.
const (
	// TaskUpdatesCheck polls the release feed and refreshes the stored
	// update notice.
	TaskUpdatesCheck = "updates.check"
	// TaskStylesRepublish pushes the stored minified stylesheet to the
	// public bucket again.
	TaskStylesRepublish = "styles.republish"
)
