package mail

import (
	"bytes"
	"fmt"
	"net/url"
	"text/template"
)

const OutreachSubject = "Free website audit — I can help"

// The cold-outreach body. Kept inline because the tracking pixel URL is
// injected per lead.
const outreachTemplate = `
      <p>Hello {{.Name}},</p>
      <p>My name is Peter, a web developer based near {{.Location}}.</p>
      <p>I build modern, mobile-friendly websites that help local businesses get more customers online.</p>
      <p>If you'd like a free website audit, reply to this email or book a 15-min consult: {{.AppURL}}</p>
      <p>If you'd prefer not to hear from me again, reply "UNSUBSCRIBE".</p>
      <p>Best,<br/>Peter</p>
      <img src="{{.PixelURL}}" width="1" height="1" />
    `

var outreachTmpl = template.Must(template.New("outreach").Parse(outreachTemplate))

// BuildOutreachHTML renders the outreach body for one lead. appURL doubles
// as the consult link and the base of the tracking pixel.
func BuildOutreachHTML(name, location, appURL, email string) (string, error) {
	data := OutreachData{
		Name:     name,
		Location: location,
		AppURL:   appURL,
		PixelURL: PixelURL(appURL, email),
	}

	var body bytes.Buffer
	if err := outreachTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render outreach template: %w", err)
	}

	return body.String(), nil
}

// PixelURL builds the tracking-pixel URL for one recipient.
func PixelURL(appURL, email string) string {
	return fmt.Sprintf("%s/api/track?email=%s", appURL, url.QueryEscape(email))
}
