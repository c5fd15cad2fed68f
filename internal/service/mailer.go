package service

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer writes outgoing emails to the log instead of sending them.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.logger.Info("password reset email",
		zap.String("to", email),
		zap.String("link", link),
	)
	return nil
}
