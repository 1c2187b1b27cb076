package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SMTPConfig holds SMTP relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sendMailFunc matches smtp.SendMail
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers email through an SMTP relay using STARTTLS when the
// server offers it
type SMTPSender struct {
	config   SMTPConfig
	logger   *zap.Logger
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPSender creates an SMTPSender. Port defaults to 587.
func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{
		config:   cfg,
		logger:   logger,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
}

// Send implements EmailSender
func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.buildMessage(email)
	if err != nil {
		return fmt.Errorf("build email: %w", err)
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	start := s.now()
	if err := s.sendMail(addr, auth, s.config.From, email.To, msg); err != nil {
		s.logger.Error("SMTP delivery failed",
			zap.String("addr", addr),
			zap.Strings("to", email.To),
			zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
		zap.Duration("duration", s.now().Sub(start)))
	return nil
}

// buildMessage renders a multipart/mixed RFC 5322 message
func (s *SMTPSender) buildMessage(email *Email) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("From", s.config.From)
	header.Set("To", strings.Join(email.To, ", "))
	header.Set("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header.Set("Date", s.now().Format(time.RFC1123Z))
	header.Set("MIME-Version", "1.0")
	header.Set("Content-Type", "multipart/mixed; boundary="+mw.Boundary())

	var out bytes.Buffer
	for _, k := range []string{"From", "To", "Subject", "Date", "MIME-Version", "Content-Type"} {
		fmt.Fprintf(&out, "%s: %s\r\n", k, header.Get(k))
	}
	out.WriteString("\r\n")

	if email.TextBody != "" {
		if err := writePart(mw, "text/plain; charset=utf-8", "", []byte(email.TextBody)); err != nil {
			return nil, err
		}
	}
	if email.HTMLBody != "" {
		if err := writePart(mw, "text/html; charset=utf-8", "", []byte(email.HTMLBody)); err != nil {
			return nil, err
		}
	}
	for _, a := range email.Attachments {
		if err := writePart(mw, a.ContentType, a.Filename, a.Data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	out.Write(buf.Bytes())
	return out.Bytes(), nil
}

func writePart(mw *multipart.Writer, contentType, filename string, data []byte) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "base64")
	if filename != "" {
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err = w.Write([]byte(encoded + "\r\n"))
	return err
}

var _ EmailSender = (*SMTPSender)(nil)
