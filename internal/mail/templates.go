package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// InvitationData fills the organization invitation email.
type InvitationData struct {
	OrganizationName string
	InviterName      string
	JoinCode         string
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>You're invited to join {{.OrganizationName}}</h2>
  <p>{{.InviterName}} has invited you to join <strong>{{.OrganizationName}}</strong>.</p>
  <p>Your join code is:</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.JoinCode}}</p>
  <h3>How to join</h3>
  <ol>
    <li>Log in to your account.</li>
    <li>Open the organizations page and choose "Join organization".</li>
    <li>Enter the join code above.</li>
  </ol>
  <p>If you were not expecting this invitation you can ignore this email.</p>
</body>
</html>
`))

// RenderInvitation builds the invitation email addressed to "to".
func RenderInvitation(to string, data InvitationData) (Message, error) {
	var body bytes.Buffer
	if err := invitationTemplate.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("failed to render invitation template: %w", err)
	}

	return Message{
		To:       to,
		Subject:  fmt.Sprintf("Invitation to join %s", data.OrganizationName),
		HTMLBody: body.String(),
	}, nil
}
