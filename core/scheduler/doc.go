// Package scheduler runs the periodic roster syncs on cron specs using robfig/cron.
//
// Jobs are wrapped so that a slow Patreon sync never overlaps with its next tick, and a panic
// inside a job is logged instead of taking the process down. A job returning an error is
// logged; there is no retry other than the next tick.
package scheduler
