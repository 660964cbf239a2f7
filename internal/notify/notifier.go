package notify

import "log"

// Notifier is the delivery side of the fan-out worker; swap the
// console implementation for Email/Slack/SMS without touching the
// consumer.
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}
