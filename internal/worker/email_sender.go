package worker

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	emailProvider "github.com/wellness-compass/backend/pkg/email"
)

const codeEmailSubject = "Wellness Compass verification code"

const codeEmailTemplate = `<p>Verification code for {{.PhoneNumber}}:</p>
<p><strong>{{.Code}}</strong></p>
<p>The code expires in 10 minutes.</p>`

type emailSender struct {
	sender emailProvider.Sender
	tmpl   *template.Template
}

func newEmailSender(sender emailProvider.Sender) *emailSender {
	return &emailSender{
		sender: sender,
		tmpl:   template.Must(template.New("code").Parse(codeEmailTemplate)),
	}
}

type codeEmailInput struct {
	PhoneNumber string
	Code        string
}

func (s *emailSender) SendCodeEmail(ctx context.Context, email string, phoneNumber string, code string) error {
	buf := new(bytes.Buffer)
	if err := s.tmpl.Execute(buf, codeEmailInput{PhoneNumber: phoneNumber, Code: code}); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	sendInput := emailProvider.SendEmailInput{
		To:      email,
		Subject: codeEmailSubject,
		Body:    buf.String(),
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
