package libs

import (
	"bytes"
	"errors"
	"html/template"

	"ecommerce-backend/config"
	"ecommerce-backend/models"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(cfg *config.Config) (*EmailService, error) {
	smtp := cfg.SMTP
	if smtp.Host == "" || smtp.User == "" || smtp.Pass == "" {
		return nil, errors.New("SMTP configuration missing")
	}

	from := smtp.From
	if from == "" {
		from = smtp.User
	}
	return &EmailService{
		dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Pass),
		from:   from,
	}, nil
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #333;">Welcome, {{.FirstName}}!</h2>
        <p>Your account <strong>{{.Email}}</strong> is ready. You can now browse the catalog, fill your cart and place orders.</p>
        <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>`))

func welcomeMessage(from string, user *models.User) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, user); err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Welcome to the shop")
	m.SetBody("text/html", body.String())
	return m, nil
}

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	m, err := welcomeMessage(s.from, user)
	if err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}
