package subscriber

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/dev-mario/raspored/core"
)

// Email templates; see assets/templates/email.
const (
	helloTemplate      = "pretplatnici_hello"
	byeTemplate        = "pretplatnici_bye"
	accessLinkTemplate = "pretplatnici"
)

type Service struct {
	repo    Repository
	mailSvc core.EmailService
	conf    *core.Config
}

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

type lifecycleMailData struct {
	Name      string
	ManageURL string
}

func (svc *Service) manageURL(sub Subscriber) string {
	return fmt.Sprintf("%s/subscribers/me/%s", svc.conf.FrontendBaseURL, sub.AccessKey)
}

// Register creates a subscriber with a fresh access key and sends the
// welcome email.
func (svc *Service) Register(ctx context.Context, ns NewSubscriber) (Subscriber, error) {
	email := core.CleanString(ns.Email, true /* lower */)

	if _, err := svc.repo.GetSubscriberByEmail(ctx, email); err == nil {
		return Subscriber{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return Subscriber{}, err
	}

	now := time.Now().UTC()
	sub := Subscriber{
		Name:          core.CleanString(ns.Name),
		Email:         email,
		Subscriptions: ns.Subscriptions,
		AccessKey:     uuid.New().String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	sub, err := svc.repo.CreateSubscriber(ctx, sub)
	if err != nil {
		return Subscriber{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: sub.Name, Address: sub.Email}},
		Subject:      "Pretplata na sadržaj - Školski planer",
		TemplateName: helloTemplate,
		TemplateData: lifecycleMailData{Name: sub.Name, ManageURL: svc.manageURL(sub)},
	})
	return sub, nil
}

func (svc *Service) GetByKey(ctx context.Context, accessKey string) (Subscriber, error) {
	return svc.repo.GetSubscriberByKey(ctx, accessKey)
}

func (svc *Service) UpdateByKey(ctx context.Context, accessKey string, us UpdateSubscriber) (Subscriber, error) {
	sub, err := svc.repo.GetSubscriberByKey(ctx, accessKey)
	if err != nil {
		return Subscriber{}, err
	}
	if us.Name != "" {
		sub.Name = core.CleanString(us.Name)
	}
	if len(us.Subscriptions) > 0 {
		sub.Subscriptions = us.Subscriptions
	}
	sub.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubscriber(ctx, sub)
}

// DeleteByKey removes the subscription and sends the goodbye email.
func (svc *Service) DeleteByKey(ctx context.Context, accessKey string) error {
	sub, err := svc.repo.GetSubscriberByKey(ctx, accessKey)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteSubscriber(ctx, sub.ID); err != nil {
		return err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: sub.Name, Address: sub.Email}},
		Subject:      "Pretplata na sadržaj - Školski planer",
		TemplateName: byeTemplate,
		TemplateData: lifecycleMailData{Name: sub.Name},
	})
	return nil
}

// SendAccessLink emails the subscription management link to an existing
// subscriber.
func (svc *Service) SendAccessLink(ctx context.Context, email string) error {
	sub, err := svc.repo.GetSubscriberByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: sub.Name, Address: sub.Email}},
		Subject:      "Pretplata na sadržaj - Školski planer",
		TemplateName: accessLinkTemplate,
		TemplateData: lifecycleMailData{Name: sub.Name, ManageURL: svc.manageURL(sub)},
	})
	return nil
}

// Emails returns the addresses of every subscriber holding the tag.
func (svc *Service) Emails(ctx context.Context, subscription string) ([]mail.Address, error) {
	subs, err := svc.repo.FindSubscribersBySubscription(ctx, subscription)
	if err != nil {
		return nil, err
	}
	addrs := make([]mail.Address, 0, len(subs))
	for _, sub := range subs {
		addrs = append(addrs, mail.Address{Name: sub.Name, Address: sub.Email})
	}
	return addrs, nil
}
