package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CodeSender delivers a verification code to a contact address. Actual
// delivery (SMS, email) lives behind this hook; the workflow only cares
// whether dispatch succeeded.
type CodeSender interface {
	SendCode(ctx context.Context, destination, code string) error
}

// LogSender writes codes to the log instead of delivering them. Used in
// development and tests.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendCode(_ context.Context, destination, code string) error {
	s.logger.WithFields(logrus.Fields{
		"destination": destination,
		"code":        code,
	}).Info("verification code issued (log delivery)")
	return nil
}
