package notifier

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// LogNotifier implements ports.Notifier by logging each notification at info.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"recipient_id", notification.RecipientID.String(),
		"order_id", notification.OrderID.String(),
		"type", notification.Type,
		"title", notification.Title,
		"message", notification.Message,
	)
	return nil
}
