package services

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
	"github.com/shopspring/decimal"
)

// EmailService sends transactional mail through Resend. Email is a
// best-effort side channel: every failure is logged and swallowed, nothing
// in the job lifecycle depends on delivery.
type EmailService struct {
	Client   *resend.Client
	From     string
	BaseURL  string
	ErrorLog *log.Logger
	InfoLog  *log.Logger
}

func NewEmailService(apiKey, from, baseURL string, infoLog, errorLog *log.Logger) *EmailService {
	s := &EmailService{
		From:     from,
		BaseURL:  baseURL,
		ErrorLog: errorLog,
		InfoLog:  infoLog,
	}
	if apiKey != "" {
		s.Client = resend.NewClient(apiKey)
	}
	return s
}

func (s *EmailService) Send(to, subject, html string) {
	if to == "" {
		return
	}
	if s.Client == nil {
		s.InfoLog.Printf("email skipped (no api key): to=%s subject=%q", to, subject)
		return
	}
	go func() {
		_, err := s.Client.Emails.Send(&resend.SendEmailRequest{
			From:    s.From,
			To:      []string{to},
			Subject: subject,
			Html:    html,
		})
		if err != nil {
			s.ErrorLog.Printf("email send failed: to=%s subject=%q err=%v", to, subject, err)
		}
	}()
}

func (s *EmailService) jobLink(role string, jobID int) string {
	return fmt.Sprintf("%s/%s/jobs/%d", s.BaseURL, role, jobID)
}

func wrap(body string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #18181b;">Flock &amp; Fur</h2>
%s
<p style="color: #71717a; font-size: 12px;">Flock &amp; Fur - Animal Cleanup Services in Birmingham, AL</p>
</div>`, body)
}

func (s *EmailService) ApplicationReceived(to, clientName, cleanerName, jobTitle string, proposedPrice *decimal.Decimal, jobID int) {
	priceLine := ""
	if proposedPrice != nil {
		priceLine = fmt.Sprintf("<p><strong>Proposed price:</strong> $%s</p>", proposedPrice.StringFixed(2))
	}
	s.Send(to, fmt.Sprintf("New application for %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p><strong>%s</strong> has applied to your job: <strong>%s</strong></p>
%s
<p><a href="%s">View Application</a></p>`,
		clientName, cleanerName, jobTitle, priceLine, s.jobLink("client", jobID))))
}

func (s *EmailService) ApplicationAccepted(to, cleanerName, jobTitle string, agreedPrice, payout decimal.Decimal, jobID int) {
	s.Send(to, fmt.Sprintf("You've been accepted for %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your application for <strong>%s</strong> was accepted.</p>
<p><strong>Agreed price:</strong> $%s<br><strong>Your payout:</strong> $%s</p>
<p><a href="%s">View Job Details</a></p>`,
		cleanerName, jobTitle, agreedPrice.StringFixed(2), payout.StringFixed(2), s.jobLink("cleaner", jobID))))
}

func (s *EmailService) JobStatusChanged(to, name, jobTitle, status, role string, jobID int) {
	s.Send(to, fmt.Sprintf("Update on %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>The job <strong>%s</strong> is now <strong>%s</strong>.</p>
<p><a href="%s">View Job Details</a></p>`,
		name, jobTitle, status, s.jobLink(role, jobID))))
}

func (s *EmailService) DisputeFiled(to, cleanerName, jobTitle, reason string, jobID int) {
	s.Send(to, fmt.Sprintf("Dispute filed for %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>A dispute has been filed for the job: <strong>%s</strong></p>
<p><strong>Reason:</strong> %s</p>
<p>Our team will review this and contact you if needed.</p>
<p><a href="%s">View Job Details</a></p>`,
		cleanerName, jobTitle, reason, s.jobLink("cleaner", jobID))))
}

func (s *EmailService) DisputeResolved(to, name, jobTitle, outcome, notes, role string, jobID int) {
	notesLine := ""
	if notes != "" {
		notesLine = fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", notes)
	}
	s.Send(to, fmt.Sprintf("Dispute resolved for %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>The dispute for <strong>%s</strong> has been resolved.</p>
<p>%s</p>
%s
<p><a href="%s">View Job Details</a></p>`,
		name, jobTitle, outcome, notesLine, s.jobLink(role, jobID))))
}

func (s *EmailService) PaymentProcessed(to, cleanerName, jobTitle string, payout decimal.Decimal, jobID int) {
	s.Send(to, fmt.Sprintf("Payment received for %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>The client paid for <strong>%s</strong>. Your payout of <strong>$%s</strong> is on its way.</p>
<p><a href="%s">View Job Details</a></p>`,
		cleanerName, jobTitle, payout.StringFixed(2), s.jobLink("cleaner", jobID))))
}

func (s *EmailService) ReviewReceived(to, name, reviewerName, jobTitle string, rating int, role string, jobID int) {
	s.Send(to, fmt.Sprintf("New review on %q", jobTitle), wrap(fmt.Sprintf(
		`<p>Hi %s,</p>
<p><strong>%s</strong> left you a %d-star review on <strong>%s</strong>.</p>
<p><a href="%s">View Job Details</a></p>`,
		name, reviewerName, rating, jobTitle, s.jobLink(role, jobID))))
}
