// Package smtp dispatches inquiry notifications by email. No mail
// library is used: the protocol needs only net/smtp plus a TLS dial for
// implicit-SSL ports.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
)

// Config holds SMTP connection and sender identity settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	AdminTo  string
}

// Notifier sends inquiry notification emails to the vendor admin.
type Notifier struct {
	cfg Config
}

// New creates an SMTP notifier.
func New(cfg Config) *Notifier {
	return &Notifier{cfg: cfg}
}

// InquiryCreated notifies the admin about a new inquiry.
func (n *Notifier) InquiryCreated(ctx context.Context, inq dominq.Inquiry) error {
	subject := "New inquiry from " + inq.BuyerID
	return n.send(ctx, n.cfg.AdminTo, subject, inquiryBody(inq))
}

// inquiryBody renders the notification HTML.
func inquiryBody(inq dominq.Inquiry) string {
	var sb strings.Builder
	sb.WriteString("<h2>New Inquiry</h2>")
	sb.WriteString("<p><b>Buyer:</b> " + htmlEscape(inq.BuyerID) + "</p>")
	sb.WriteString("<p><b>Message:</b> " + htmlEscape(inq.Message) + "</p>")
	sb.WriteString("<ul>")
	for _, p := range inq.Products {
		name := p.Name
		if name == "" {
			name = p.PartNumber
		}
		qty := p.Quantity
		if qty <= 0 {
			qty = 1
		}
		sb.WriteString("<li>" + htmlEscape(name) + " (" + htmlEscape(p.PartNumber) +
			", qty " + strconv.Itoa(qty) + ")</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// send delivers one HTML message. Port 465 uses implicit SSL; any other
// port negotiates STARTTLS.
func (n *Notifier) send(ctx context.Context, to, subject, html string) error {
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	var (
		client *smtp.Client
		err    error
	)
	if n.cfg.Port == 465 {
		client, err = n.dialTLS(ctx, addr)
	} else {
		client, err = n.dialStartTLS(ctx, addr)
	}
	if err != nil {
		return err
	}
	defer client.Close()

	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(n.message(to, subject, html))); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

func (n *Notifier) dialTLS(ctx context.Context, addr string) (*smtp.Client, error) {
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: n.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smtp tls dial: %w", err)
	}
	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return client, nil
}

func (n *Notifier) dialStartTLS(ctx context.Context, addr string) (*smtp.Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smtp dial: %w", err)
	}
	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	if err := client.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
		client.Close()
		return nil, fmt.Errorf("smtp starttls: %w", err)
	}
	return client, nil
}

func (n *Notifier) message(to, subject, html string) string {
	var sb strings.Builder
	sb.WriteString("From: " + n.cfg.FromName + " <" + n.cfg.From + ">\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(html)
	return sb.String()
}
