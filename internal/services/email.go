package services

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
)

// EmailResult reports the outcome of one send attempt. A failed send is a
// business outcome, not an exception.
type EmailResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// EmailSender delivers HTML mail.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) EmailResult
}

// SMTPSender is the net/smtp backed EmailSender.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{host: host, port: port, username: username, password: password, from: from}
}

// Send delivers one HTML message. Errors are folded into the result.
func (s *SMTPSender) Send(_ context.Context, to, subject, htmlBody string) EmailResult {
	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		return EmailResult{Success: false, StatusCode: 500, Message: err.Error()}
	}
	return EmailResult{Success: true, StatusCode: 200, Message: "sent"}
}

// ConfirmationEmail renders the account confirmation message.
func ConfirmationEmail(callbackURL, userID, token string) (subject, body string) {
	link := buildCallbackLink(callbackURL, userID, token)
	subject = "Confirm your account"
	body = fmt.Sprintf(
		`<html><body><p>Welcome! Please confirm your account by clicking <a href=%q>here</a>.</p></body></html>`,
		link,
	)
	return subject, body
}

// ResetPasswordEmail renders the password reset message.
func ResetPasswordEmail(callbackURL, userID, token string) (subject, body string) {
	link := buildCallbackLink(callbackURL, userID, token)
	subject = "Reset your password"
	body = fmt.Sprintf(
		`<html><body><p>A password reset was requested for your account. Click <a href=%q>here</a> to choose a new password. Ignore this mail if you did not request it.</p></body></html>`,
		link,
	)
	return subject, body
}

// InvitationEmail renders the adventure invitation message.
func InvitationEmail(adventureName, acceptURL string) (subject, body string) {
	subject = fmt.Sprintf("You are invited to join %s", adventureName)
	body = fmt.Sprintf(
		`<html><body><p>You have been invited to join the adventure <b>%s</b>. Click <a href=%q>here</a> to accept.</p></body></html>`,
		adventureName, acceptURL,
	)
	return subject, body
}

func buildCallbackLink(callbackURL, userID, token string) string {
	sep := "?"
	if strings.Contains(callbackURL, "?") {
		sep = "&"
	}
	return callbackURL + sep + "userId=" + url.QueryEscape(userID) + "&token=" + url.QueryEscape(token)
}
