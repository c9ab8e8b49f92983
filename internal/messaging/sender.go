package messaging

import (
	"context"
	"log/slog"
	"sync"

	"worldsmith/internal/account/contact"
)

// Sender is the delivery backend. The service renders, the sender ships.
type Sender interface {
	SendEmail(ctx context.Context, to contact.Email, subject, body string) error
	SendSMS(ctx context.Context, to contact.Phone, body string) error
}

// SlogSender writes messages to the log instead of delivering them. It is
// the development backend.
type SlogSender struct {
	logger *slog.Logger
}

func NewSlogSender(logger *slog.Logger) *SlogSender {
	return &SlogSender{logger: logger}
}

func (s *SlogSender) SendEmail(ctx context.Context, to contact.Email, subject, body string) error {
	s.logger.InfoContext(ctx, "email message", "to", to.Address, "subject", subject, "body", body)
	return nil
}

func (s *SlogSender) SendSMS(ctx context.Context, to contact.Phone, body string) error {
	s.logger.InfoContext(ctx, "sms message", "to", to.E164, "body", body)
	return nil
}

// RecordedMessage is a captured delivery.
type RecordedMessage struct {
	To      string
	Subject string
	Body    string
}

// MemorySender captures deliveries for tests.
type MemorySender struct {
	mu     sync.Mutex
	emails []RecordedMessage
	sms    []RecordedMessage
}

func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

func (s *MemorySender) SendEmail(ctx context.Context, to contact.Email, subject, body string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, RecordedMessage{To: to.Address, Subject: subject, Body: body})
	return nil
}

func (s *MemorySender) SendSMS(ctx context.Context, to contact.Phone, body string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sms = append(s.sms, RecordedMessage{To: to.E164, Body: body})
	return nil
}

func (s *MemorySender) Emails() []RecordedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedMessage(nil), s.emails...)
}

func (s *MemorySender) SMS() []RecordedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedMessage(nil), s.sms...)
}
