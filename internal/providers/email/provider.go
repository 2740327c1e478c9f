package email

import "context"

// Message is a single outbound mail with an optional attachment.
type Message struct {
	To      string
	Subject string
	Body    string

	Attachment     []byte
	AttachmentName string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, msg Message) error {
	return nil
}
