package services

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// StatusNotification describes one application status change to tell a
// student about.
type StatusNotification struct {
	To          string
	StudentName string
	JobTitle    string
	CompanyName string
	Status      string
}

// Notifier delivers status notifications off the request path. Dispatch
// never blocks and never reports failure to the caller; delivery is
// best effort.
type Notifier interface {
	Dispatch(n StatusNotification)
}

// EmailNotifier queues notifications on a buffered channel and delivers
// them from a single background worker.
type EmailNotifier struct {
	sender EmailSender
	queue  chan StatusNotification
	logger *zap.Logger
	wg     sync.WaitGroup
	once   sync.Once
}

// NewEmailNotifier creates a notifier with the given queue capacity and
// starts its worker.
func NewEmailNotifier(sender EmailSender, queueSize int, logger *zap.Logger) *EmailNotifier {
	if queueSize <= 0 {
		queueSize = 64
	}
	n := &EmailNotifier{
		sender: sender,
		queue:  make(chan StatusNotification, queueSize),
		logger: logger,
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Dispatch enqueues a notification. When the queue is full the message
// is dropped with a log entry rather than blocking the request.
func (n *EmailNotifier) Dispatch(notification StatusNotification) {
	select {
	case n.queue <- notification:
	default:
		n.logger.Warn("Notification queue full, dropping message",
			zap.String("to", notification.To),
			zap.String("status", notification.Status),
		)
	}
}

// Close stops accepting notifications and waits for queued messages to
// drain.
func (n *EmailNotifier) Close() {
	n.once.Do(func() { close(n.queue) })
	n.wg.Wait()
}

func (n *EmailNotifier) run() {
	defer n.wg.Done()
	for notification := range n.queue {
		subject, body := renderStatusEmail(notification)
		if err := n.sender.Send(notification.To, subject, body); err != nil {
			n.logger.Error("Failed to send notification email",
				zap.String("to", notification.To),
				zap.String("status", notification.Status),
				zap.Error(err),
			)
			continue
		}
		n.logger.Info("Notification email sent",
			zap.String("to", notification.To),
			zap.String("status", notification.Status),
		)
	}
}

// renderStatusEmail builds the subject and plain-text body for one
// status change.
func renderStatusEmail(n StatusNotification) (subject, body string) {
	subject = fmt.Sprintf("Application Status Update: %s at %s", n.JobTitle, n.CompanyName)

	var message string
	switch n.Status {
	case "SHORTLISTED":
		message = fmt.Sprintf("Congratulations! You have been shortlisted for the %s position at %s.", n.JobTitle, n.CompanyName)
	case "REJECTED":
		message = fmt.Sprintf("Thank you for your interest in the %s position at %s. Unfortunately, we will not be moving forward with your application at this time.", n.JobTitle, n.CompanyName)
	case "HIRED":
		message = fmt.Sprintf("Wonderful news! You have been hired for the %s position at %s. Welcome aboard!", n.JobTitle, n.CompanyName)
	case "APPLIED":
		message = fmt.Sprintf("Your application for the %s position at %s has been received.", n.JobTitle, n.CompanyName)
	default:
		message = fmt.Sprintf("Your application status for %s at %s has been updated to %s.", n.JobTitle, n.CompanyName, n.Status)
	}

	body = fmt.Sprintf(
		"Hi %s,\n\n%s\n\nJob: %s\nCompany: %s\nNew Status: %s\n\nThis is an automated message from the Placement Portal. Please do not reply to this email.\n",
		n.StudentName, message, n.JobTitle, n.CompanyName, n.Status,
	)
	return subject, body
}
