// Package mailer sends the emails triggered by a contact form submission.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// DefaultSMTPTimeout bounds one SMTP delivery when the caller's context has no deadline.
const DefaultSMTPTimeout = 30 * time.Second

// SMTPSender delivers through an authenticated SMTP relay.
type SMTPSender struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Timeout time.Duration

	send func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns a sender for host:port authenticating as user.
func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	s := &SMTPSender{Host: host, Port: port, User: user, Pass: pass, Timeout: DefaultSMTPTimeout}
	s.send = s.sendMail
	return s
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.User == "" || s.Pass == "" {
		return errors.New("SMTP credentials not configured")
	}
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	var b strings.Builder
	b.WriteString("To: " + to.Address + "\r\n")
	b.WriteString("From: " + s.User + "\r\n")
	if msg.ReplyTo != "" {
		replyTo, err := mail.ParseAddress(msg.ReplyTo)
		if err != nil {
			return fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
		b.WriteString("Reply-To: " + replyTo.Address + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	if _, ok := ctx.Deadline(); !ok && s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	if err := s.send(ctx, addr, auth, s.User, []string{to.Address}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to.Address, err)
	}
	return nil
}

// sendMail follows smtp.SendMail over a connection that is closed when ctx ends.
func (s *SMTPSender) sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return errors.Join(err, ctx.Err())
	}
	defer c.Close()

	if err := s.deliver(c, a, from, to, msg); err != nil {
		return errors.Join(err, ctx.Err())
	}
	return nil
}

func (s *SMTPSender) deliver(c *smtp.Client, a smtp.Auth, from string, to []string, msg []byte) error {
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
			return err
		}
	}
	if ok, _ := c.Extension("AUTH"); ok && a != nil {
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// ResendEndpoint is the Resend email API.
const ResendEndpoint = "https://api.resend.com/emails"

// ResendSender delivers through the Resend HTTP API.
type ResendSender struct {
	APIKey   string
	From     string
	Endpoint string
	Client   *http.Client
}

// NewResendSender returns a sender for the public Resend API.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		APIKey:   apiKey,
		From:     from,
		Endpoint: ResendEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if s.APIKey == "" {
		return errors.New("RESEND_API_KEY not configured")
	}

	body, err := json.Marshal(resendRequest{
		From:    s.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	Log *logger.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.WithFields(map[string]any{
		"to":       msg.To,
		"subject":  msg.Subject,
		"reply_to": msg.ReplyTo,
	}).Info("email not sent (log provider)")
	return nil
}
