// Package payment holds the transaction verifier used in place of a real
// payment provider.
package payment

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// DefaultDeclinedPrefix marks transaction IDs the stub rejects.
const DefaultDeclinedPrefix = "DECLINED"

// StubVerifier accepts every transaction except those whose ID starts with
// the declined prefix. The amount is only logged.
type StubVerifier struct {
	declinedPrefix string
	logger         *zap.Logger
}

func NewStubVerifier(declinedPrefix string, logger *zap.Logger) *StubVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := strings.TrimSpace(declinedPrefix)
	if prefix == "" {
		prefix = DefaultDeclinedPrefix
	}
	return &StubVerifier{declinedPrefix: prefix, logger: logger}
}

func (v *StubVerifier) Verify(ctx context.Context, transactionID string, amount float64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	accepted := !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(transactionID)), strings.ToUpper(v.declinedPrefix))
	v.logger.Debug("transaction verified",
		zap.String("transaction_id", transactionID),
		zap.Float64("amount", amount),
		zap.Bool("accepted", accepted),
	)
	return accepted, nil
}
