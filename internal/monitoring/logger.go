// Package monitoring holds the shared logger used by the storage layers
// (plan archive, migrations) that sit outside the planner's own streams.
package monitoring

import "log"

// Logf defaults to log.Printf. The CLI mutes it with -quiet; tests swap
// it out to capture output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
