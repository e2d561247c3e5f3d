package messaging

import (
	"context"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
	"github.com/oksasatya/go-ddd-registration/pkg/mailer"
	"github.com/oksasatya/go-ddd-registration/pkg/mailer/templates"
)

type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeNotifier enqueues a welcome email job for every new account.
type WelcomeNotifier struct {
	Pub         JSONPublisher
	CompanyName string
	LoginURL    string
}

func NewWelcomeNotifier(pub JSONPublisher, companyName, loginURL string) *WelcomeNotifier {
	return &WelcomeNotifier{Pub: pub, CompanyName: companyName, LoginURL: loginURL}
}

func (n *WelcomeNotifier) AccountRegistered(ctx context.Context, a entity.Account) error {
	job := mailer.EmailJob{
		To:       a.Email,
		Template: templates.Welcome,
		Data: map[string]any{
			"Name":        a.Name,
			"AvatarURL":   a.AvatarURL,
			"CompanyName": n.CompanyName,
			"LoginURL":    n.LoginURL,
		},
	}
	return n.Pub.PublishJSON(ctx, job)
}
