package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRender(t *testing.T) {
	tmpl := Template{
		Kind: TemplateOrderPlaced,
		Body: "Bonjour [prenom] [nom], commande [num_commande] ([etat]) : [total]",
	}

	got := tmpl.Render(Fields{
		LastName:    "Trabelsi",
		FirstName:   "Sami",
		Number:      "2026/0042",
		StatusLabel: "Nouvelle Commande",
		Total:       "82.500 TND",
	})

	assert.Equal(t, "Bonjour Sami Trabelsi, commande 2026/0042 (Nouvelle Commande) : 82.500 TND", got)
}

func TestTemplateRender_MissingFieldsLeaveBlanks(t *testing.T) {
	tmpl := Template{Kind: TemplateWelcome, Body: "Bienvenue [nom] [prenom]"}

	assert.Equal(t, "Bienvenue Dupont", tmpl.Render(Fields{LastName: "Dupont"}))
}

func TestTemplateRender_BlankBody(t *testing.T) {
	assert.Empty(t, Template{Body: ""}.Render(Fields{LastName: "X"}))
	assert.Empty(t, Template{Body: "   \n\t"}.Render(Fields{LastName: "X"}))
}

func TestTemplateRender_UnknownPlaceholderKept(t *testing.T) {
	tmpl := Template{Body: "Commande [num_commande] [ref]"}

	assert.Equal(t, "Commande 2026/0001 [ref]", tmpl.Render(Fields{Number: "2026/0001"}))
}
