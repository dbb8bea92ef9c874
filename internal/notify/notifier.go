package notify

import (
	"fmt"
	"log"
)

// Notifier abstracts the delivery channel (email/SMS/Slack later).
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs to stdout; the default until a real channel exists.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s\n", subject, message)
	return nil
}

// StayRange renders the check-in/check-out pair for human-facing messages.
func StayRange(checkIn, checkOut string) string {
	return fmt.Sprintf("%s → %s", checkIn, checkOut)
}
