// Package notify abstracts outbound customer messaging. The lifecycle
// services render text; dispatching it is a collaborator concern.
package notify

import (
	"context"
	"log"

	"backend/pkg/format"
)

// Messenger dispatches a rendered message to a phone number.
type Messenger interface {
	Send(ctx context.Context, phone, body string) error
}

// WhatsAppLinkMessenger produces a wa.me deep link for the message and
// logs it for the operator to act on. The store sends warranty messages
// from the owner's phone; this keeps the backend out of the send path.
type WhatsAppLinkMessenger struct{}

func NewWhatsAppLinkMessenger() *WhatsAppLinkMessenger {
	return &WhatsAppLinkMessenger{}
}

func (m *WhatsAppLinkMessenger) Send(ctx context.Context, phone, body string) error {
	link := format.WhatsAppLink(phone, body)
	log.Printf("warranty message for %s (%s): %s", format.Phone(phone), format.Truncate(body, 80), link)
	return nil
}
