// Package email renders studio notifications and sends them over SMTP.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"photostudio/internal/config"
	"photostudio/internal/domain/models"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	tplContact   = "contact.html"
	tplSelection = "selection.html"
)

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	log      *slog.Logger
	sender   Sender
	from     string
	notifyTo string
	tpl      *template.Template
}

// New builds a mailer from SMTP settings. An empty host yields a disabled
// mailer whose sends are logged and dropped.
func New(log *slog.Logger, cfg config.SMTPConfig) (*Mailer, error) {
	var sender Sender
	if cfg.Host != "" {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		d.SSL = cfg.SSL
		sender = d
	}

	return newMailer(log, sender, cfg.From, cfg.NotifyTo)
}

func newMailer(log *slog.Logger, sender Sender, from, notifyTo string) (*Mailer, error) {
	const op = "email.New"

	tpl, err := template.New("").Option("missingkey=zero").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Mailer{
		log:      log,
		sender:   sender,
		from:     from,
		notifyTo: notifyTo,
		tpl:      tpl,
	}, nil
}

func (m *Mailer) Enabled() bool {
	return m.sender != nil && m.notifyTo != ""
}

// SendContact notifies the studio about a contact form message. Replies go
// to the sender of the message.
func (m *Mailer) SendContact(ctx context.Context, msg models.Message) error {
	const op = "email.Mailer.SendContact"

	subject := fmt.Sprintf("New inquiry from %s: %s", msg.Name, msg.Service)
	if err := m.send(ctx, subject, tplContact, msg, msg.Email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SendSelection notifies the studio that a client completed a selection.
func (m *Mailer) SendSelection(ctx context.Context, g models.Gallery) error {
	const op = "email.Mailer.SendSelection"

	subject := fmt.Sprintf("%s selected %d photos in %q", g.ClientName, len(g.Selections), g.Name)
	if err := m.send(ctx, subject, tplSelection, g, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mailer) send(ctx context.Context, subject, tplName string, data any, replyTo string) error {
	if !m.Enabled() {
		m.log.Debug("email disabled, dropping notification", slog.String("subject", subject))
		return nil
	}

	var body bytes.Buffer
	if err := m.tpl.ExecuteTemplate(&body, tplName, data); err != nil {
		return fmt.Errorf("render %s: %w", tplName, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.notifyTo)
	if replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
