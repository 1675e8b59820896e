// Package scheduler drives periodic sync invocations.
//
// The catalog sync is built around short, resumable invocations. In a hosted
// deployment an external cron hits the HTTP endpoint; when the service runs
// standalone, a Trigger plays that role by calling the configured jobs on a
// fixed interval. Time is injected through Clock so the loop is testable.
package scheduler
