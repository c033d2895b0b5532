package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mailer is the notification sidecar. Both calls are fire-and-forget: they
// return immediately and a failed send never affects the caller's outcome.
type Mailer interface {
	SendRegistrationConfirmation(to, name, eventTitle, eventDate, location string)
	SendEventReminder(to, name, eventTitle, eventDate, location string)
}

// SMTPMailer delivers over a plain SMTP relay and records every attempted
// send in a Mongo collection, best-effort.
type SMTPMailer struct {
	addr  string // host:port
	from  string
	audit *mongo.Collection // nil disables the audit trail
}

func NewSMTPMailer(addr, from string, audit *mongo.Collection) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from, audit: audit}
}

func (m *SMTPMailer) SendRegistrationConfirmation(to, name, eventTitle, eventDate, location string) {
	subject := "Registration Confirmation: " + eventTitle
	body := buildBody("Registration Confirmation",
		fmt.Sprintf("Thank you for registering for <strong>%s</strong>.", eventTitle),
		name, eventDate, location)
	go m.send("confirmation", to, subject, body)
}

func (m *SMTPMailer) SendEventReminder(to, name, eventTitle, eventDate, location string) {
	subject := "Reminder: " + eventTitle + " is Coming Up!"
	body := buildBody("Event Reminder",
		fmt.Sprintf("This is a reminder that <strong>%s</strong> is coming up soon.", eventTitle),
		name, eventDate, location)
	go m.send("reminder", to, subject, body)
}

func (m *SMTPMailer) send(kind, to, subject, body string) {
	var sendErr error
	if m.addr != "" {
		msg := strings.Join([]string{
			"From: " + m.from,
			"To: " + to,
			"Subject: " + subject,
			"MIME-Version: 1.0",
			"Content-Type: text/html; charset=UTF-8",
			"",
			body,
		}, "\r\n")
		sendErr = smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
	}
	if sendErr != nil {
		// Swallowed: notifications never fail the workflow that queued them.
		log.Printf("mail: %s to %s failed: %v", kind, to, sendErr)
	}
	m.record(kind, to, subject, sendErr)
}

func (m *SMTPMailer) record(kind, to, subject string, sendErr error) {
	if m.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := map[string]any{
		"kind":    kind,
		"to":      to,
		"subject": subject,
		"sentAt":  time.Now().UTC(),
		"ok":      sendErr == nil,
	}
	if sendErr != nil {
		doc["error"] = sendErr.Error()
	}
	if _, err := m.audit.InsertOne(ctx, doc); err != nil {
		log.Printf("mail: audit insert failed: %v", err)
	}
}

func buildBody(heading, lede, name, eventDate, location string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString("<h2>" + heading + "</h2>")
	sb.WriteString("<p>Hello " + name + ",</p>")
	sb.WriteString("<p>" + lede + "</p>")
	sb.WriteString("<p>Event details:</p>")
	sb.WriteString("<ul>")
	sb.WriteString("<li>Date: " + eventDate + "</li>")
	sb.WriteString("<li>Location: " + location + "</li>")
	sb.WriteString("</ul>")
	sb.WriteString("<p>We look forward to seeing you there!</p>")
	sb.WriteString("<p>Best regards,<br>The Event Management Team</p>")
	sb.WriteString("</body></html>")
	return sb.String()
}

// NoopMailer drops everything. Used when no relay is configured and in tests.
type NoopMailer struct{}

func (NoopMailer) SendRegistrationConfirmation(to, name, eventTitle, eventDate, location string) {}
func (NoopMailer) SendEventReminder(to, name, eventTitle, eventDate, location string)           {}
