// services/notifier.go
package services

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"saloonhub-backend/models"
)

// TwilioNotifier sends booking status-change messages to the customer and
// the saloon over WhatsApp when the phone is in E.164 format, SMS
// otherwise.
type TwilioNotifier struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
	logger       *zap.Logger
}

func NewTwilioNotifier(accountSID, authToken, smsFrom, whatsappFrom string, logger *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		smsFrom:      smsFrom,
		whatsappFrom: whatsappFrom,
		logger:       logger,
	}
}

var statusMessages = map[models.BookingStatus]string{
	models.BookingConfirmed: "Your booking on %s has been confirmed. See you there!",
	models.BookingCompleted: "Thanks for visiting! Your booking on %s is complete.",
	models.BookingCancelled: "Your booking on %s has been cancelled.",
}

func (n *TwilioNotifier) BookingStatusChanged(booking *models.Booking, saloon *models.Saloon) error {
	text, ok := statusMessages[booking.Status]
	if !ok {
		return nil
	}
	body := fmt.Sprintf(text, booking.ScheduledAt.Format("Mon, 2 Jan 15:04"))

	var firstErr error
	for _, phone := range []string{booking.CustomerPhone, saloon.Phone} {
		if phone == "" {
			continue
		}
		if err := n.send(phone, body); err != nil {
			n.logger.Warn("failed to send booking notification",
				zap.String("bookingId", booking.ID.String()),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (n *TwilioNotifier) send(phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(phone, "+") && n.whatsappFrom != "" {
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + n.whatsappFrom)
	} else {
		params.SetTo(phone)
		params.SetFrom(n.smsFrom)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		n.logger.Debug("notification sent", zap.String("sid", *resp.Sid))
	}
	return nil
}
