package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type signInLinkEmailData struct {
	Title    string
	CTALabel string
	CTAURL   string
}

func renderEmailTemplate(name string, data interface{}) (string, error) {
	tpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}

	return buf.String(), nil
}

func renderSignInLinkEmail(signInURL string) (string, error) {
	return renderEmailTemplate("signin_link.html", signInLinkEmailData{
		Title:    subjectSignInLink,
		CTALabel: "Sign in to Colabatr",
		CTAURL:   signInURL,
	})
}
