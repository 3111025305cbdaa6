package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"alupro-backend/internal/config"
	"alupro-backend/pkg/logger"
)

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

type smtpEmailService struct {
	smtpAddr string
	auth     smtp.Auth
	from     mail.Address
}

// NewSMTPEmailService uses PLAIN auth only when a username is configured
// (MailHog / Mailpit in development need none)
func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &smtpEmailService{
		smtpAddr: cfg.Host + ":" + cfg.Port,
		auth:     auth,
		from:     mail.Address{Name: cfg.FromName, Address: cfg.From},
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return errors.New("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(s.from, req)
	if err != nil {
		return err
	}

	if err := smtp.SendMail(s.smtpAddr, s.auth, s.from.Address, req.To, msg); err != nil {
		logger.ErrorWithFields("Failed to send email", err, map[string]interface{}{
			"to":        strings.Join(req.To, ","),
			"subject":   req.Subject,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildMessage renders an RFC 5322 message, body quoted-printable so Arabic text survives 7bit relays
func buildMessage(from mail.Address, req EmailRequest) ([]byte, error) {
	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(req.To, ", "))
	if req.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", req.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", req.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), domainOf(from.Address))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(req.Body)); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	return buf.Bytes(), nil
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
