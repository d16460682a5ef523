package sns

import (
	"context"
	"log/slog"
)

type noopSender struct{}

// NewNoopSender returns a CodeSender that logs instead of publishing. Used
// when SNS credentials are not configured so issuance still works locally;
// callers fall back to reading the code id from the response.
func NewNoopSender() CodeSender {
	return noopSender{}
}

func (noopSender) SendCode(_ context.Context, to, _ string) error {
	slog.Info("SMS delivery disabled, skipping send", "to", to)
	return nil
}
