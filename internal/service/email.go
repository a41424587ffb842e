package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Poscom2010/Fleetrack-sub000/internal/maintenance"

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

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
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

func (s *emailService) SendServiceDueDigest(ctx context.Context, email, companyName string, due []VehicleStatus) error {
	if len(due) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\n%d vehicle(s) in %s need servicing:\n\n", len(due), companyName)
	for _, vs := range due {
		line := fmt.Sprintf("  %s (%s %s): %s, %d km since last service",
			vs.Vehicle.Registration, vs.Vehicle.Make, vs.Vehicle.Model,
			vs.Status.Band, vs.Status.SinceService)
		if vs.Status.IsOverdue {
			line += fmt.Sprintf(", overdue by %d km", -vs.Status.RemainingKm)
		} else {
			line += fmt.Sprintf(", %d km remaining", vs.Status.RemainingKm)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nBest regards,\nFleetrack")

	subject := fmt.Sprintf("Service due: %d vehicle(s) in %s", len(due), companyName)
	return s.send(email, subject, b.String())
}

func (s *emailService) SendOverdueAlert(ctx context.Context, email, registration string, status maintenance.Status) error {
	subject := fmt.Sprintf("Service overdue: %s", registration)
	body := fmt.Sprintf(`Hello,

Vehicle %s is overdue for service by %d km (%d km driven since its last service).

Please schedule maintenance as soon as possible.

Best regards,
Fleetrack`, registration, -status.RemainingKm, status.SinceService)

	return s.send(email, subject, body)
}
