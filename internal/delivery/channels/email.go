package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"voice_reception/config"
)

// SendTestEmail gửi email thử nghiệm với subject/body đã render sẵn.
// Dùng cấu hình SMTP của server, không qua queue.
func SendTestEmail(cfg *config.Configuration, recipient, subject, body string) error {
	if cfg.SMTP_Host == "" || cfg.SMTP_From == "" {
		return fmt.Errorf("SMTP chưa được cấu hình")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.SMTP_From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_Username, cfg.SMTP_Password)
	return dialer.DialAndSend(msg)
}
