package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Template names accepted in mailer.EmailJob.Template.
const (
	Welcome = "welcome"
)

type entry struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var registry = map[string]entry{
	Welcome: {
		subject: texttpl.Must(texttpl.New("subject").Parse(`Welcome to {{or .CompanyName "DevConnector"}}`)),
		text: texttpl.Must(texttpl.New("text").Parse(`Hi {{.Name}},

Your account is ready. Sign in at {{.LoginURL}}.

{{or .CompanyName "DevConnector"}}
`)),
		html: htmpl.Must(htmpl.New("html").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
{{if .AvatarURL}}<img src="{{.AvatarURL}}" width="80" height="80" alt="">{{end}}
<h2>Hi {{.Name}},</h2>
<p>Your account is ready.</p>
<p><a href="{{.LoginURL}}">Sign in</a></p>
<p>{{or .CompanyName "DevConnector"}}</p>
</body></html>`)),
	},
}

// Render executes the named template and returns subject, plain-text and HTML bodies.
func Render(name string, data map[string]any) (string, string, string, error) {
	e, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}
	var subj, text, html bytes.Buffer
	if err := e.subject.Execute(&subj, data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := e.text.Execute(&text, data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	if err := e.html.Execute(&html, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return subj.String(), text.String(), html.String(), nil
}
