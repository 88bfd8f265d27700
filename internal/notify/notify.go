// Package notify sends the end-of-run summary mail to operators.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/status"
)

// Mailer sends run summaries over SMTP. A Mailer with no host configured is
// valid and silently skips sending.
type Mailer struct {
	cfg config.Config
}

// New builds a mailer from the SMTP configuration.
func New(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether mail notification is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPHost != "" && m.cfg.MailFrom != "" && len(m.cfg.MailTo) > 0
}

// SendRunSummary mails one line per ledger entry produced by a pipeline run.
// Unconfigured mail is a no-op, not an error.
func (m *Mailer) SendRunSummary(entries []db.RunLogEntry) error {
	if !m.Enabled() {
		return nil
	}

	msg := email.NewEmail()
	msg.From = m.cfg.MailFrom
	msg.To = m.cfg.MailTo
	msg.Subject = fmt.Sprintf("registry harvest %s — %s",
		m.cfg.QuarterLabel, time.Now().Format("02/01/2006"))
	msg.Text = []byte(summaryBody(entries))

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	if err := msg.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send run summary: %w", err)
	}
	return nil
}

func summaryBody(entries []db.RunLogEntry) string {
	if len(entries) == 0 {
		return "No operations ran.\n"
	}
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-18s %s → %s  %d/%d  %d (%s)\n",
			e.Operation,
			time.Unix(e.WindowStart, 0).UTC().Format("02/01/2006"),
			time.Unix(e.WindowEnd, 0).UTC().Format("02/01/2006"),
			e.Processed, e.TotalCount,
			e.Status, status.Text(e.Status))
	}
	return sb.String()
}
