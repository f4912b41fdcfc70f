package service

import (
	"context"
	"log/slog"
)

// CodeSender delivers a verification code to a target address. Production
// deployments plug in an SMS or email gateway; the default just logs.
type CodeSender interface {
	Send(ctx context.Context, target, code string) error
}

// LogSender writes codes to the log instead of delivering them. Useful for
// local development and tests.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, target, code string) error {
	s.Logger.Info("verification code issued", "target", target, "code", code)
	return nil
}
