package mailer

import (
	"fmt"
	"sync"

	"github.com/osteele/liquid"
)

const confirmationSubject = "Welcome!"

// Liquid sources for the double-opt-in confirmation email.
const (
	confirmationHTMLTemplate = `<p>Welcome to our newsletter!</p>
<p>Click <a href="{{ confirmation_link }}">here</a> to confirm your subscription.</p>`

	confirmationTextTemplate = `Welcome to our newsletter!
Visit {{ confirmation_link }} to confirm your subscription.`
)

// ConfirmationEmail renders the subscription confirmation message for a
// recipient. Templates are parsed once per process.
func ConfirmationEmail(to, confirmationLink string) (Email, error) {
	tpls, err := confirmationTemplates()
	if err != nil {
		return Email{}, err
	}

	bindings := map[string]any{"confirmation_link": confirmationLink}

	html, err := tpls.html.RenderString(bindings)
	if err != nil {
		return Email{}, fmt.Errorf("render confirmation html: %w", err)
	}
	text, err := tpls.text.RenderString(bindings)
	if err != nil {
		return Email{}, fmt.Errorf("render confirmation text: %w", err)
	}

	return Email{
		To:      to,
		Subject: confirmationSubject,
		HTML:    html,
		Text:    text,
	}, nil
}

type parsedTemplates struct {
	html *liquid.Template
	text *liquid.Template
}

var confirmationTemplates = sync.OnceValues(func() (parsedTemplates, error) {
	engine := liquid.NewEngine()

	html, err := engine.ParseString(confirmationHTMLTemplate)
	if err != nil {
		return parsedTemplates{}, fmt.Errorf("parse confirmation html template: %w", err)
	}
	text, err := engine.ParseString(confirmationTextTemplate)
	if err != nil {
		return parsedTemplates{}, fmt.Errorf("parse confirmation text template: %w", err)
	}

	return parsedTemplates{html: html, text: text}, nil
})
