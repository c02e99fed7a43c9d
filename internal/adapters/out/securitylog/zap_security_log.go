// Package securitylog appends security events to a dedicated JSON log file.
package securitylog

import (
	"parcel/internal/core/ports"
	"parcel/internal/pkg/logging"

	"go.uber.org/zap"
)

// ZapSecurityLog writes one entry per event. Write failures are reported by
// zap on its error output and never reach the caller.
type ZapSecurityLog struct {
	logger *zap.Logger
}

var _ ports.SecurityLog = (*ZapSecurityLog)(nil)

// Open creates the log at path, appending to an existing file.
func Open(path string) (*ZapSecurityLog, error) {
	logger, err := logging.NewFile(path)
	if err != nil {
		return nil, err
	}
	return New(logger), nil
}

func New(logger *zap.Logger) *ZapSecurityLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSecurityLog{logger: logger}
}

func (l *ZapSecurityLog) Record(event ports.SecurityEvent, subject string, detail string) {
	l.logger.Info(string(event),
		zap.String("subject", subject),
		zap.String("detail", detail),
	)
}

// Close flushes buffered entries.
func (l *ZapSecurityLog) Close() error {
	return l.logger.Sync()
}
