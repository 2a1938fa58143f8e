package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/campus-hub/internal/events"
	"github.com/spec-kit/campus-hub/internal/service"
)

// StartNotificationWorker attaches the notification consumers to the activity
// dispatcher and returns the owning service.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	notifications := service.NewNotificationService(dispatcher, logger)
	notifications.RegisterHandlers()
	return notifications
}
