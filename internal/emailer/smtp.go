package emailer

import (
	"io"

	"gopkg.in/gomail.v2"
)

// SMTP delivers email through a plain SMTP relay, for deployments without an
// Azure Communication Services resource.
type SMTP struct {
	Server   string
	Port     int
	User     string
	Password string
}

func (s *SMTP) Send(toAddress, toName string, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetAddressHeader("To", toAddress, toName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	m.Embed("ojc.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(logoPNG)
		return err
	}))

	d := gomail.NewDialer(s.Server, s.Port, s.User, s.Password)
	return d.DialAndSend(m)
}
