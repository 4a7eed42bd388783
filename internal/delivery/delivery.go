package delivery

import (
	"crypto/tls"
	"encoding/csv"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/adriansoto/mexbrief/config"
)

const (
	SubscribersCSV = "subscribers.csv"

	smtpHost = "smtp.gmail.com"
	smtpPort = "465"
)

// LoadSubscribers reads active subscriber addresses from
// subscribers.csv when present, otherwise falls back to the
// comma-separated SUBSCRIBERS environment variable. The active column
// defaults to true when missing.
func LoadSubscribers(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		subs := splitEnvList(os.Getenv("SUBSCRIBERS"))
		slog.Info("[Delivery] no subscribers.csv found, using SUBSCRIBERS env",
			slog.Int("count", len(subs)))
		return subs
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil || len(rows) == 0 {
		if err != nil {
			slog.Warn("[Delivery] failed to parse subscribers.csv",
				slog.String("error", err.Error()))
		}
		return splitEnvList(os.Getenv("SUBSCRIBERS"))
	}

	emailCol, activeCol := -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			emailCol = i
		case "active":
			activeCol = i
		}
	}
	if emailCol < 0 {
		return splitEnvList(os.Getenv("SUBSCRIBERS"))
	}

	var emails []string
	for _, row := range rows[1:] {
		if emailCol >= len(row) {
			continue
		}
		active := "true"
		if activeCol >= 0 && activeCol < len(row) && strings.TrimSpace(row[activeCol]) != "" {
			active = strings.ToLower(strings.TrimSpace(row[activeCol]))
		}
		if active != "true" {
			continue
		}
		if email := strings.TrimSpace(row[emailCol]); email != "" {
			emails = append(emails, email)
		}
	}

	slog.Info("[Delivery] loaded subscribers from csv", slog.Int("count", len(emails)))
	return emails
}

func splitEnvList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SendEmail delivers the edition to every subscriber as a multipart
// plain+HTML message. Zero subscribers is a skip, not an error.
func SendEmail(html, plain string, date time.Time) error {
	sender := os.Getenv("EMAIL_SENDER")
	password := os.Getenv("EMAIL_PASSWORD")
	subscribers := LoadSubscribers(SubscribersCSV)

	if len(subscribers) == 0 {
		slog.Info("[Delivery] no subscribers found, skipping send")
		return nil
	}
	if sender == "" || password == "" {
		return fmt.Errorf("[Delivery] EMAIL_SENDER or EMAIL_PASSWORD missing")
	}

	subject := fmt.Sprintf("%s — %s", config.NewsletterName, date.Format("January 02, 2006"))

	// Port 465 is implicit TLS, so dial the socket ourselves instead of
	// using smtp.SendMail (which expects STARTTLS).
	conn, err := tls.Dial("tcp", smtpHost+":"+smtpPort, &tls.Config{ServerName: smtpHost})
	if err != nil {
		return fmt.Errorf("[Delivery] dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, smtpHost)
	if err != nil {
		return fmt.Errorf("[Delivery] smtp client: %w", err)
	}
	defer client.Quit()

	if err := client.Auth(smtp.PlainAuth("", sender, password, smtpHost)); err != nil {
		return fmt.Errorf("[Delivery] smtp auth: %w", err)
	}

	for _, recipient := range subscribers {
		msg, err := buildMessage(sender, recipient, subject, plain, html)
		if err != nil {
			return fmt.Errorf("[Delivery] build message: %w", err)
		}
		if err := sendOne(client, sender, recipient, msg); err != nil {
			return fmt.Errorf("[Delivery] send to %s: %w", recipient, err)
		}
		slog.Info("[Delivery] sent", slog.String("to", recipient))
	}
	return nil
}

func sendOne(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// buildMessage assembles a multipart/alternative MIME message with the
// plain part first so capable clients prefer the HTML part.
func buildMessage(from, to, subject, plain, html string) ([]byte, error) {
	var sb strings.Builder
	writer := multipart.NewWriter(&sb)

	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())

	plainPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	plainPart.Write([]byte(plain))

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	htmlPart.Write([]byte(html))

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
