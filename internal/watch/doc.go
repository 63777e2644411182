// Package watch regenerates the site configuration when the configuration
// file or the sidebar content directories change.
//
// Bursts of filesystem events are coalesced by a debounce window. A
// configuration change reloads the file before regenerating; an invalid edit
// is logged and the previous configuration stays in effect. Optionally a cron
// schedule re-checks that every sidebar directory exists, and a Prometheus
// endpoint exposes generation metrics.
package watch
