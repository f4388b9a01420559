// Package logging provides opt-in file logging with rotation for the auditor.
//
// Without --debug the default logger discards everything, so an audit run
// prints nothing but its summary line. With --debug, JSON logs are written
// to ~/.auditor/logs/auditor.log, including one entry per skipped lesson.
package logging
