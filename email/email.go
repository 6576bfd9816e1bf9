package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService(host, port, user, password, from string) *EmailService {
	return &EmailService{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

// SendContactNotification mails a summary of a contact form submission to
// the site owner (the configured from address).
func (e *EmailService) SendContactNotification(name, fromEmail, category, message string) error {
	if e.host == "" {
		return fmt.Errorf("smtp not configured")
	}

	subject := fmt.Sprintf("New %s Message", titleCategory(category))
	body := fmt.Sprintf("Name: %s\nEmail: %s\nCategory: %s\nMessage: %s\n",
		name, fromEmail, category, message)

	msg := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, e.from, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, []string{e.from}, []byte(msg)); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

func titleCategory(category string) string {
	category = strings.ReplaceAll(category, "_", " ")
	if category == "" {
		return category
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
