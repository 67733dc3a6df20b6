// Package querylog emits one structured record per handled query.
//
// The field names and their order — query, ip, time, exec_ms — are a
// compatibility contract with downstream log consumers and must not change.
package querylog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Logger formats and emits per-query records. A sink failure never reaches
// the query path; logrus write errors are swallowed by the hook machinery.
type Logger struct {
	out logrus.FieldLogger
}

// New creates a Logger. A nil out falls back to the standard logger.
func New(out logrus.FieldLogger) *Logger {
	if out == nil {
		out = logrus.StandardLogger()
	}
	return &Logger{out: out}
}

// Emit writes the record for one handled query attempt.
func (l *Logger) Emit(query, clientAddr string, ts time.Time, elapsed time.Duration) {
	l.out.WithFields(logrus.Fields{
		"query":   query,
		"ip":      clientAddr,
		"time":    ts.UTC().Format(time.RFC3339),
		"exec_ms": float64(elapsed) / float64(time.Millisecond),
	}).Debug("query handled")
}
