package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// SMTPSender - реализация EmailSenderPort поверх обычного SMTP с PLAIN-аутентификацией.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPSender(host, portNum, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     portNum,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	senderLogger := logger.WithFields(port.Fields{
		"component": "SMTPSender",
		"method":    "Send",
		"to":        to,
	})

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	senderLogger.Debug("Sending email.", port.Fields{"subject": subject})
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		senderLogger.Error("Failed to send email", err, nil)
		return fmt.Errorf("failed to send email: %w", err)
	}

	senderLogger.Info("Email sent successfully.", nil)
	return nil
}
