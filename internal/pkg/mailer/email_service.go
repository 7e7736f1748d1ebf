package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBugReportAlert(reportId, userName, content string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	alertEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, alertEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		alertEmail:  alertEmail,
	}
}

func (s *emailService) SendBugReportAlert(reportId, userName, content string) error {
	if s.alertEmail == "" {
		return nil // no operator address configured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.alertEmail)
	m.SetHeader("Subject", fmt.Sprintf("New bug report: %s", reportId))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Bug Report</h2>
			<p><b>Report ID:</b> %s</p>
			<p><b>From:</b> %s</p>
			<p><b>Description:</b></p>
			<blockquote style="border-left: 3px solid #ccc; padding-left: 10px;">%s</blockquote>
		</div>
	`, reportId, userName, content)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send bug report alert %s: %v\n", reportId, err)
		return err
	}

	fmt.Printf("[MAILER] Bug report alert sent for %s\n", reportId)
	return nil
}
