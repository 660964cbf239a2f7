package service

import "log"

// ConsoleMailer logs reset messages instead of sending mail, the same
// MVP stand-in pattern as the console notifier in the fan-out worker.
type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer { return &ConsoleMailer{} }

func (ConsoleMailer) SendPasswordReset(email, token string) error {
	log.Printf("[mail] password reset for %s token=%s", email, token)
	return nil
}
