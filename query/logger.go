package query

import "log"

// Logger is the query package's logging seam, matching ir.Logger's shape so both packages
// share the same one-method interface; the default routes to the standard library's
// logger, per SPEC_FULL.md §5.1 (no structured-logging library appears anywhere in the
// retrieved example pack).
type Logger interface {
	Printf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) { log.Printf(format, args...) }

// DefaultLogger is the package-level default Logger.
var DefaultLogger Logger = stdLogger{}
