// Package wizard drives the four-step savings estimator: category selection,
// package specs, usage, and results. A Controller owns its draft and results
// exclusively and is not safe for concurrent use; callers that share one
// across goroutines must serialize access.
package wizard
