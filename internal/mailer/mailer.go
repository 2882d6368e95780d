// Package mailer delivers composed drafts over authenticated SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Config holds relay and sender settings. When RedirectToTest is set,
// every message is delivered to TestAddress instead of the draft's
// recipient; real prospects are only reachable by turning the switch off
// explicitly.
type Config struct {
	Host           string
	Port           string
	SenderEmail    string
	SenderPassword string
	RedirectToTest bool
	TestAddress    string
}

// sendFunc matches smtp.SendMail, which negotiates STARTTLS when the
// relay advertises it. Injectable for tests.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends drafts one message per SMTP session.
type Mailer struct {
	cfg  Config
	send sendFunc
}

// New creates a Mailer.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// SendResult records one delivery attempt. Err is nil on success.
type SendResult struct {
	Company   string
	Recipient string
	Err       error
}

// SendAll delivers every draft, isolating per-message failures so one bad
// recipient never aborts the batch. Results come back in draft order.
func (m *Mailer) SendAll(ctx context.Context, drafts []model.Draft) []SendResult {
	results := make([]SendResult, 0, len(drafts))

	for _, draft := range drafts {
		if ctx.Err() != nil {
			results = append(results, SendResult{
				Company:   draft.Company,
				Recipient: draft.Email,
				Err:       ctx.Err(),
			})
			continue
		}

		result := m.sendOne(draft)
		if result.Err != nil {
			zap.L().Warn("send failed",
				zap.String("company", draft.Company),
				zap.String("recipient", result.Recipient),
				zap.Error(result.Err),
			)
		} else {
			zap.L().Info("email sent",
				zap.String("company", draft.Company),
				zap.String("recipient", result.Recipient),
			)
		}
		results = append(results, result)
	}

	sent := 0
	for _, r := range results {
		if r.Err == nil {
			sent++
		}
	}
	zap.L().Info("delivery complete",
		zap.Int("sent", sent),
		zap.Int("failed", len(results)-sent),
		zap.Bool("redirected_to_test", m.cfg.RedirectToTest),
	)
	return results
}

func (m *Mailer) sendOne(draft model.Draft) SendResult {
	recipient := draft.Email
	if m.cfg.RedirectToTest {
		recipient = m.cfg.TestAddress
	}

	result := SendResult{Company: draft.Company, Recipient: recipient}
	if recipient == "" {
		result.Err = eris.Errorf("mailer: no recipient for %s", draft.Company)
		return result
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.SenderEmail, m.cfg.SenderPassword, m.cfg.Host)
	msg := renderMessage(m.cfg.SenderEmail, recipient, draft.Subject, draft.Body)

	if err := m.send(addr, auth, m.cfg.SenderEmail, []string{recipient}, msg); err != nil {
		result.Err = eris.Wrapf(err, "mailer: send to %s", recipient)
	}
	return result
}

// renderMessage builds a plain-text RFC 5322 message with CRLF line
// endings throughout.
func renderMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
