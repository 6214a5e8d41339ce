package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"echospell/internal/progress"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ReportService emails weekly progress summaries via Amazon SES.
type ReportService struct {
	client    *sesv2.Client
	store     progress.Store
	fromEmail string
	fromName  string
	enabled   bool
}

// NewReportService creates a report service. With no from address configured
// the service is disabled and sending becomes a no-op.
func NewReportService(ctx context.Context, awsRegion, fromEmail, fromName string, store progress.Store) (*ReportService, error) {
	if fromEmail == "" {
		log.Println("Report emails disabled: SES_FROM_EMAIL not configured")
		return &ReportService{store: store, enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Report emails enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &ReportService{
		client:    sesv2.NewFromConfig(cfg),
		store:     store,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the report service is enabled
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// BuildWeeklyReport assembles the subject and bodies of the weekly summary
// for one language: the day streak plus a per-day accuracy table.
func (s *ReportService) BuildWeeklyReport(asOf time.Time, language string, days int) (subject, htmlBody, textBody string, err error) {
	streak, err := s.store.Streak(asOf, language, false)
	if err != nil {
		return "", "", "", err
	}
	recent, err := s.store.Recent(asOf, language, days)
	if err != nil {
		return "", "", "", err
	}

	subject = fmt.Sprintf("EchoSpell weekly report: %d day streak", streak)

	var htmlRows, textRows strings.Builder
	for _, day := range recent {
		total := day.Correct + day.Wrong
		if total == 0 {
			htmlRows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>no practice</td><td>-</td></tr>\n", day.Date))
			textRows.WriteString(fmt.Sprintf("%s  no practice\n", day.Date))
			continue
		}
		htmlRows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d/%d</td><td>%.0f%%</td></tr>\n",
			day.Date, day.Correct, total, day.Accuracy*100))
		textRows.WriteString(fmt.Sprintf("%s  %d/%d correct (%.0f%%)\n",
			day.Date, day.Correct, total, day.Accuracy*100))
	}

	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>EchoSpell Weekly Report</h1>
	<p>Current practice streak: <strong>%d days</strong></p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Date</th><th>Correct</th><th>Accuracy</th></tr>
		%s
	</table>
	<p style="font-size: 12px; color: #666;">This is an automated email from EchoSpell. Please do not reply.</p>
</body>
</html>
`, streak, htmlRows.String())

	textBody = fmt.Sprintf(`EchoSpell Weekly Report

Current practice streak: %d days

%s
---
This is an automated email from EchoSpell. Please do not reply.
`, streak, textRows.String())

	return subject, htmlBody, textBody, nil
}

// SendWeeklyReport builds and sends the weekly summary to one recipient.
func (s *ReportService) SendWeeklyReport(ctx context.Context, toEmail, language string, days int) error {
	subject, htmlBody, textBody, err := s.BuildWeeklyReport(time.Now(), language, days)
	if err != nil {
		return err
	}

	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly report to %s", toEmail)
		return nil
	}

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *ReportService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
