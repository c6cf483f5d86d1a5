package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/contacts"
)

var adminTmpl = template.Must(template.New("admin").Parse(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Someone reached out!</h2>
    <p>A visitor has submitted a message through your portfolio contact form.</p>
    <p><strong>Name:</strong> {{.Contact.FullName}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Contact.Email}}">{{.Contact.Email}}</a></p>
    <p style="white-space: pre-wrap;">{{.Contact.Message}}</p>
    <p><a href="mailto:{{.Contact.Email}}?subject=Re: Your message on my portfolio">Reply to {{.Contact.FirstName}}</a></p>
    <hr>
    <p style="color: #94a3b8; font-size: 11px;">Submitted on {{.Submitted}}</p>
  </body>
</html>`))

var confirmTmpl = template.Must(template.New("confirm").Parse(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Thank you for reaching out!</h2>
    <p>Hi <strong>{{.Contact.FirstName}}</strong>,</p>
    <p>Your message has been received. I will review it and respond within 24 hours.</p>
    <p>Best regards,<br>{{.Owner}}</p>
    <hr>
    <p style="color: #94a3b8; font-size: 11px;">This is an automated confirmation from {{.Owner}}'s portfolio.</p>
  </body>
</html>`))

type emailData struct {
	Contact   contacts.Contact
	Owner     string
	Submitted string
}

// Notifier sends the owner notification and the visitor confirmation for a
// new contact message.
type Notifier struct {
	sender   Sender
	receiver string
	owner    string
	now      func() time.Time
}

// NewNotifier sends through sender; receiver gets the owner notification and
// owner is the name used to sign the confirmation.
func NewNotifier(sender Sender, receiver, owner string) *Notifier {
	return &Notifier{sender: sender, receiver: receiver, owner: owner, now: time.Now}
}

// NotifyContact sends both emails concurrently and reports every failure.
func (n *Notifier) NotifyContact(ctx context.Context, c contacts.Contact) error {
	data := emailData{
		Contact:   c,
		Owner:     n.owner,
		Submitted: n.now().Format("January 02, 2006 at 03:04 PM"),
	}

	admin, err := render(adminTmpl, data)
	if err != nil {
		return err
	}
	confirm, err := render(confirmTmpl, data)
	if err != nil {
		return err
	}

	messages := []Message{
		{
			To:      n.receiver,
			Subject: fmt.Sprintf("New Contact Message from %s", c.FullName()),
			HTML:    admin,
			ReplyTo: c.Email,
		},
		{
			To:      c.Email,
			Subject: fmt.Sprintf("Message Sent Successfully to %s", n.owner),
			HTML:    confirm,
		},
	}

	errs := make([]error, len(messages))
	var g errgroup.Group
	for i, msg := range messages {
		g.Go(func() error {
			errs[i] = n.sender.Send(ctx, msg)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func render(t *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
