package lib

import (
	"log"

	"evbook/src/config"

	"github.com/wneessen/go-mail"
)

type SendMailInput struct {
	From    string
	To      []string
	Subject string
	Body    string
	Html    bool
}

func GetSMTPClient(cfg *config.Config) (*mail.Client, error) {
	c, err := mail.NewClient(
		cfg.SMTPHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

func SendMail(cfg *config.Config, inputParams *SendMailInput) error {
	c, err := GetSMTPClient(cfg)
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.From(inputParams.From); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
	}
	if err := msg.To(inputParams.To...); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
	}
	msg.Subject(inputParams.Subject)
	if inputParams.Html {
		msg.SetBodyString(mail.TypeTextHTML, inputParams.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, inputParams.Body)
	}
	return c.DialAndSend(msg)
}
