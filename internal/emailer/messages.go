// Package emailer renders and delivers the club's transactional emails.
// Delivery goes through Azure Communication Services by default, with an
// SMTP fallback, and NoEmail when neither is configured.
package emailer

import (
	"embed"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed logo.png
var logoPNG []byte

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Message is a rendered email ready for delivery.
type Message struct {
	Subject string
	HTML    string
}

func render(name string, data any) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

func currentYear() int {
	return time.Now().Year()
}

// ExpirationReminder is sent when a membership is daysLeft days away from
// expiring.
func ExpirationReminder(recipientName string, daysLeft int, loginURL string) (Message, error) {
	html, err := render("expiration_reminder.html", map[string]any{
		"RecipientName": recipientName,
		"DaysLeft":      daysLeft,
		"LoginURL":      loginURL,
		"CurrentYear":   currentYear(),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: fmt.Sprintf("Membership Expiration Reminder - %d Days Left", daysLeft),
		HTML:    html,
	}, nil
}

// EventReminder is sent to active members when a club event is daysLeft days
// away.
func EventReminder(recipientName, eventName, eventStart string, daysLeft int) (Message, error) {
	html, err := render("event_reminder.html", map[string]any{
		"RecipientName":  recipientName,
		"EventName":      eventName,
		"EventStartTime": eventStart,
		"DaysLeft":       daysLeft,
		"CurrentYear":    currentYear(),
	})
	if err != nil {
		return Message{}, err
	}
	plural := ""
	if daysLeft > 1 {
		plural = "s"
	}
	return Message{
		Subject: fmt.Sprintf("Event Reminder: %s starts in %d day%s", eventName, daysLeft, plural),
		HTML:    html,
	}, nil
}

// FamilyInvitation carries the acceptance link for a family membership.
func FamilyInvitation(recipientName, invitationLink string) (Message, error) {
	html, err := render("family_invitation.html", map[string]any{
		"RecipientName":  recipientName,
		"InvitationLink": invitationLink,
		"CurrentYear":    currentYear(),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: "You're Invited to Join the Oviedo Jeep Club Family Membership",
		HTML:    html,
	}, nil
}

// RenewalConfirmation confirms a successful membership renewal payment.
func RenewalConfirmation(recipientName string) (Message, error) {
	html, err := render("membership_renewal.html", map[string]any{
		"RecipientName": recipientName,
		"CurrentYear":   currentYear(),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: "Membership Renewal Confirmation", HTML: html}, nil
}

// Welcome is sent after a successful signup payment, linking the receipt.
func Welcome(recipientName, receiptURL string) (Message, error) {
	html, err := render("new_membership.html", map[string]any{
		"RecipientName": recipientName,
		"ReceiptURL":    receiptURL,
		"CurrentYear":   currentYear(),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: "Welcome to The Oviedo Jeep Club!", HTML: html}, nil
}
