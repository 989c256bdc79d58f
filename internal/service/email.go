package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendPaymentReported(ctx context.Context, ownerEmail, ownerName, reporterName, groupName, amount string) error {
	subject := fmt.Sprintf("New contribution awaiting approval - %s", groupName)
	body := fmt.Sprintf("Hello %s,\n\n%s reported a contribution of %s in %q. It is waiting for your approval.\n\nBest regards,\nThe JuntaAi Team",
		ownerName, reporterName, amount, groupName)
	return s.send(ownerEmail, ownerName, subject, body)
}

func (s *emailService) SendPaymentDecision(ctx context.Context, reporterEmail, reporterName, groupName, amount string, confirmed bool) error {
	verdict := "confirmed"
	if !confirmed {
		verdict = "rejected"
	}
	subject := fmt.Sprintf("Your contribution was %s - %s", verdict, groupName)
	body := fmt.Sprintf("Hello %s,\n\nYour contribution of %s in %q was %s by the group owner.\n\nBest regards,\nThe JuntaAi Team",
		reporterName, amount, groupName, verdict)
	return s.send(reporterEmail, reporterName, subject, body)
}

func (s *emailService) SendPendingReminder(ctx context.Context, ownerEmail, ownerName, groupName string, pendingCount int) error {
	subject := fmt.Sprintf("Pending approvals - %s", groupName)
	body := fmt.Sprintf("Hello %s,\n\nThe group %q has %d contribution(s) waiting for your approval.\n\nBest regards,\nThe JuntaAi Team",
		ownerName, groupName, pendingCount)
	return s.send(ownerEmail, ownerName, subject, body)
}
