package mailing

import (
	"fmt"
	"strings"
	"time"

	"html/template"

	"github.com/crewline/crewline/config"
	"github.com/go-mail/mail"
	"go.uber.org/zap"
)

// emailTemplate is the shared shell for all outgoing mails
const emailTemplate = `<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif;">
    <h2>{{.title}}</h2>
    <p>{{.message}}</p>
    {{if .link}}<p><a href="{{.link}}">{{.link_text}}</a></p>{{end}}
    <p style="color: #888; font-size: 12px;">{{.service_name}} &middot; {{.date}}</p>
  </body>
</html>`

type Mailer struct {
	noop          bool
	client        *mail.Dialer
	log           *zap.Logger
	cfg           *config.Configuration
	emailTemplate *template.Template
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.Behaviour.Name
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["site"] = m.cfg.Behaviour.Site
	b["title"] = title
	b["message"] = message
	return b
}

// SendInviteMail mails the registration link for an invite token
func (m *Mailer) SendInviteMail(email string, link string) error {
	if m.noop {
		m.log.Info("skipping email `Invite` because noop is configured", zap.String("link", link))
		return nil
	}
	subject := fmt.Sprintf("You have been invited to join %s", m.cfg.Behaviour.Name)
	base := m.baseModel(
		subject,
		"Someone added you to their restaurant team. Use the link below to set up your account.",
	)
	base["link"] = link
	base["link_text"] = "Complete your registration"
	text := fmt.Sprintf(
		"%s\r\n\r\nComplete your registration: %s\r\n",
		subject,
		link,
	)
	return m.send(email, subject, text, base)
}

// SendTestEmail verifies the smtp configuration
func (m *Mailer) SendTestEmail(email string) error {
	if m.noop {
		m.log.Info("skipping email `Test` because noop is configured")
		return nil
	}
	subject := "Your test email is here!"
	base := m.baseModel(subject, "Hey, your email configuration seems to be fine.")
	return m.send(email, subject, subject, base)
}

func (m *Mailer) send(
	email string,
	subject string,
	text string,
	viewModel map[string]interface{},
) error {
	buffer := new(strings.Builder)
	err := m.emailTemplate.Execute(buffer, viewModel)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetAddressHeader("To", email, "")
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", buffer.String())
	return m.client.DialAndSend(msg)
}

func NewMailer(log *zap.Logger, cfg *config.Configuration) (*Mailer, error) {
	t, err := template.New("email").Parse(emailTemplate)
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          cfg.SMTP == nil || !cfg.SMTP.Enabled,
		log:           log,
		emailTemplate: t,
		cfg:           cfg,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

func NewNoOpMailer(log *zap.Logger, cfg *config.Configuration) *Mailer {
	t := template.Must(template.New("email").Parse(emailTemplate))
	return &Mailer{
		noop:          true,
		log:           log,
		cfg:           cfg,
		emailTemplate: t,
	}
}
