package messaging

import (
	"context"
	"strings"
)

// TemplateKind selects which configured message body to render.
type TemplateKind string

const (
	// TemplateOrderPlaced is sent when a new order is first placed.
	TemplateOrderPlaced TemplateKind = "order_placed"
	// TemplateOrderStatus is sent on an opted-in status change.
	TemplateOrderStatus TemplateKind = "order_status"
	// TemplateWelcome is sent to a newly registered client.
	TemplateWelcome TemplateKind = "welcome"
)

// Template is a configured message body with placeholders.
// Supported placeholders: [nom], [prenom], [num_commande], [etat], [total].
type Template struct {
	Kind TemplateKind
	Body string
}

// Fields carries the values substituted into a template.
type Fields struct {
	LastName    string
	FirstName   string
	Number      string
	StatusLabel string
	Total       string
}

// Render substitutes the placeholder fields into the template body.
// Returns an empty string when the body is blank, which callers treat as
// "nothing to send".
func (t Template) Render(f Fields) string {
	body := strings.TrimSpace(t.Body)
	if body == "" {
		return ""
	}
	r := strings.NewReplacer(
		"[nom]", f.LastName,
		"[prenom]", f.FirstName,
		"[num_commande]", f.Number,
		"[etat]", f.StatusLabel,
		"[total]", f.Total,
	)
	return strings.TrimSpace(r.Replace(body))
}

// TemplateRepository loads configured message templates.
type TemplateRepository interface {
	FindByKind(ctx context.Context, kind TemplateKind) (*Template, error)
	Save(ctx context.Context, template *Template) error
}

// Sender hands a rendered message to the external messaging collaborator.
// Transport, delivery confirmation and retries are the collaborator's
// concern; implementations must never block a document transaction.
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}
