// Package mailer delivers transactional email. Delivery is fire-and-forget:
// messages are queued, rendered from named templates and sent by a
// background dispatcher; failures are logged and never reach the caller.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	TemplateOrderConfirmation        = "order_confirmation"
	TemplateOrderShipped             = "order_shipped"
	TemplateOrderStatusUpdate        = "order_status_update"
	TemplateQuoteRequestConfirmation = "quote_request_confirmation"
	TemplateContactFormConfirmation  = "contact_form_confirmation"
)

type Message struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

func renderTemplate(name string, data map[string]any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}

	return &buf, nil
}
