package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

// PushService delivers FCM notifications to a user's registered devices.
// Like email, it is fire-and-forget: a nil client (no credentials configured)
// or a send failure never affects the request that triggered it.
type PushService struct {
	Client   *messaging.Client
	UserRepo *repositories.UserRepository
	ErrorLog *log.Logger
}

func (s *PushService) Notify(ctx context.Context, userID int, title, body, link string) {
	if s == nil || s.Client == nil {
		return
	}
	tokens, err := s.UserRepo.GetDeviceTokens(ctx, userID)
	if err != nil {
		s.ErrorLog.Printf("push: load device tokens for user %d: %v", userID, err)
		return
	}
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"link": link,
			},
		}
		if _, err := s.Client.Send(ctx, msg); err != nil {
			s.ErrorLog.Printf("push: send to user %d failed: %v", userID, err)
		}
	}
}
