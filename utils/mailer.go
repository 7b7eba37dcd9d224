package utils

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"crmdesk/config"
	"crmdesk/models"
)

// NotifyContactInquiry mails the configured admin inbox about a new contact
// inquiry. Best effort: callers run it in a goroutine and a failure only logs.
func NotifyContactInquiry(contact *models.Contact) error {
	cfg := config.AppConfig
	if cfg.SMTP.Host == "" || cfg.AdminEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTP.From)
	m.SetHeader("To", cfg.AdminEmail)
	m.SetHeader("Subject", fmt.Sprintf("New inquiry from %s", contact.Name))
	m.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		contact.Name, contact.Email, contact.Phone, contact.Message,
	))

	d := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	if err := d.DialAndSend(m); err != nil {
		logrus.WithError(err).Warn("failed to send contact inquiry notification")
		return err
	}
	return nil
}
