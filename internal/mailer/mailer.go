package mailer

import (
	"context"
	"fmt"
	"log"
)

// Message represents an email to be sent.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string // Plain text body
	HTML    string // Optional HTML body
}

// Sender sends emails. Implementations can be swapped (SendGrid, SMTP)
// without changing callers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// VerificationEmail builds the account-verification message for an OTP code.
func VerificationEmail(to, code string) Message {
	return Message{
		To:      to,
		Subject: "E-Healthcare: Verify Your Account",
		Body:    fmt.Sprintf("Welcome! Your verification code is %s. It expires in 10 minutes.", code),
		HTML: fmt.Sprintf(`<h2>Welcome!</h2>
<p>Your verification code:</p>
<h1 style="letter-spacing:5px;color:#0066cc;">%s</h1>
<p>Expires in 10 minutes.</p>`, code),
	}
}

// LogSender logs instead of sending, for development setups without email
// credentials.
type LogSender struct{}

// Send logs the message.
func (LogSender) Send(ctx context.Context, msg Message) error {
	log.Printf("mailer: would send %q to %s", msg.Subject, msg.To)
	return nil
}
