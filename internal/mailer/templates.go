package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

// TemplateData carries everything the email templates can render.
type TemplateData struct {
	FirstName      string
	EventTitle     string
	EventDate      string
	EventTime      string
	EventLocation  string
	GroupName      string
	UnsubscribeURL string
}

const confirmationSubject = "Anmeldebestätigung: %s"

const confirmationHTML = `<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Hallo {{.FirstName}},</h2>
  <p>deine Anmeldung zur Erstiwoche der Hochschule Niederrhein war erfolgreich!</p>
  <table cellpadding="4">
    <tr><td><strong>Veranstaltung:</strong></td><td>{{.EventTitle}}</td></tr>
    <tr><td><strong>Datum:</strong></td><td>{{.EventDate}}</td></tr>
    <tr><td><strong>Uhrzeit:</strong></td><td>{{.EventTime}} Uhr</td></tr>
    {{if .EventLocation}}<tr><td><strong>Ort:</strong></td><td>{{.EventLocation}}</td></tr>{{end}}
    {{if .GroupName}}<tr><td><strong>Gruppe:</strong></td><td>{{.GroupName}}</td></tr>{{end}}
  </table>
  <p>Wir freuen uns auf dich!</p>
  <p style="font-size: 12px; color: #888;">
    Falls du nicht teilnehmen kannst, kannst du dich
    <a href="{{.UnsubscribeURL}}">hier abmelden</a>.
  </p>
</body>
</html>`

const confirmationText = `Hallo {{.FirstName}},

deine Anmeldung zur Erstiwoche der Hochschule Niederrhein war erfolgreich!

Veranstaltung: {{.EventTitle}}
Datum: {{.EventDate}}
Uhrzeit: {{.EventTime}} Uhr
{{if .EventLocation}}Ort: {{.EventLocation}}
{{end}}{{if .GroupName}}Gruppe: {{.GroupName}}
{{end}}
Wir freuen uns auf dich!

Abmelden: {{.UnsubscribeURL}}`

const reminderDayBeforeSubject = "Erinnerung: %s ist morgen"

const reminderDayBeforeHTML = `<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Hallo {{.FirstName}},</h2>
  <p>morgen findet deine Veranstaltung statt:</p>
  <table cellpadding="4">
    <tr><td><strong>Veranstaltung:</strong></td><td>{{.EventTitle}}</td></tr>
    <tr><td><strong>Datum:</strong></td><td>{{.EventDate}}</td></tr>
    <tr><td><strong>Uhrzeit:</strong></td><td>{{.EventTime}} Uhr</td></tr>
    {{if .EventLocation}}<tr><td><strong>Ort:</strong></td><td>{{.EventLocation}}</td></tr>{{end}}
    {{if .GroupName}}<tr><td><strong>Gruppe:</strong></td><td>{{.GroupName}}</td></tr>{{end}}
  </table>
  <p>Bis morgen!</p>
  <p style="font-size: 12px; color: #888;">
    Du kannst nicht teilnehmen? <a href="{{.UnsubscribeURL}}">Hier abmelden</a>.
  </p>
</body>
</html>`

const reminder3HoursSubject = "Gleich geht's los: %s"

const reminder3HoursHTML = `<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Hallo {{.FirstName}},</h2>
  <p>in wenigen Stunden startet deine Veranstaltung:</p>
  <table cellpadding="4">
    <tr><td><strong>Veranstaltung:</strong></td><td>{{.EventTitle}}</td></tr>
    <tr><td><strong>Uhrzeit:</strong></td><td>{{.EventTime}} Uhr</td></tr>
    {{if .EventLocation}}<tr><td><strong>Ort:</strong></td><td>{{.EventLocation}}</td></tr>{{end}}
    {{if .GroupName}}<tr><td><strong>Gruppe:</strong></td><td>{{.GroupName}}</td></tr>{{end}}
  </table>
  <p>Bis gleich!</p>
</body>
</html>`

const cancellationSubject = "Abmeldung bestätigt: %s"

const cancellationHTML = `<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Hallo {{.FirstName}},</h2>
  <p>deine Abmeldung von <strong>{{.EventTitle}}</strong> am {{.EventDate}} wurde bestätigt.</p>
  <p>Schade, dass du nicht dabei bist. Vielleicht klappt es bei einer anderen Veranstaltung!</p>
</body>
</html>`

var (
	confirmationHTMLTmpl      = template.Must(template.New("confirmation").Parse(confirmationHTML))
	confirmationTextTmpl      = texttemplate.Must(texttemplate.New("confirmation_text").Parse(confirmationText))
	reminderDayBeforeHTMLTmpl = template.Must(template.New("reminder_day_before").Parse(reminderDayBeforeHTML))
	reminder3HoursHTMLTmpl    = template.Must(template.New("reminder_3_hours").Parse(reminder3HoursHTML))
	cancellationHTMLTmpl      = template.Must(template.New("cancellation").Parse(cancellationHTML))
)

// BuildConfirmation renders the registration confirmation email.
func BuildConfirmation(to string, data TemplateData) (*Message, error) {
	var html, text bytes.Buffer
	if err := confirmationHTMLTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render confirmation email: %w", err)
	}
	if err := confirmationTextTmpl.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return &Message{
		To:       to,
		Subject:  fmt.Sprintf(confirmationSubject, data.EventTitle),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}

// BuildReminderDayBefore renders the 24 hour reminder email.
func BuildReminderDayBefore(to string, data TemplateData) (*Message, error) {
	var html bytes.Buffer
	if err := reminderDayBeforeHTMLTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render reminder email: %w", err)
	}
	return &Message{
		To:       to,
		Subject:  fmt.Sprintf(reminderDayBeforeSubject, data.EventTitle),
		HTMLBody: html.String(),
	}, nil
}

// BuildReminder3Hours renders the 3 hour reminder email.
func BuildReminder3Hours(to string, data TemplateData) (*Message, error) {
	var html bytes.Buffer
	if err := reminder3HoursHTMLTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render reminder email: %w", err)
	}
	return &Message{
		To:       to,
		Subject:  fmt.Sprintf(reminder3HoursSubject, data.EventTitle),
		HTMLBody: html.String(),
	}, nil
}

// BuildCancellation renders the cancellation confirmation email.
func BuildCancellation(to string, data TemplateData) (*Message, error) {
	var html bytes.Buffer
	if err := cancellationHTMLTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render cancellation email: %w", err)
	}
	return &Message{
		To:       to,
		Subject:  fmt.Sprintf(cancellationSubject, data.EventTitle),
		HTMLBody: html.String(),
	}, nil
}
