package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/pricing"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

// StripeService covers both halves of the payment flow: Connect onboarding
// for cleaners and destination-charge checkouts for clients. Money moves in
// one charge, with the platform fee withheld via application_fee_amount, so
// fee + payout always equals what the client paid.
type StripeService struct {
	Client        *client.API
	WebhookSecret string
	BaseURL       string

	JobRepo     *repositories.JobRepository
	ProfileRepo *repositories.CleanerProfileRepository
	UserRepo    *repositories.UserRepository
	Redis       *redis.Client
	Email       *EmailService
	Push        *PushService
	Notify      Notifier

	ErrorLog *log.Logger
}

func NewStripeService(secretKey, webhookSecret, baseURL string, errorLog *log.Logger) *StripeService {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeService{
		Client:        sc,
		WebhookSecret: webhookSecret,
		BaseURL:       baseURL,
		ErrorLog:      errorLog,
	}
}

// ConnectAccount creates (or reuses) the cleaner's express account and
// returns a fresh onboarding link. Links expire quickly, so a new one is
// minted on every call.
func (s *StripeService) ConnectAccount(ctx context.Context, userID int, role string) (string, error) {
	if role != models.RoleCleaner {
		return "", models.ErrForbidden
	}

	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	accountID := ""
	if profile.StripeAccountID != nil {
		accountID = *profile.StripeAccountID
	}
	if accountID == "" {
		user, err := s.UserRepo.GetUserByID(ctx, userID)
		if err != nil {
			return "", err
		}
		acct, err := s.Client.Accounts.New(&stripe.AccountParams{
			Params:       stripe.Params{IdempotencyKey: stripe.String(uuid.NewString())},
			Type:         stripe.String(string(stripe.AccountTypeExpress)),
			Country:      stripe.String("US"),
			Email:        stripe.String(user.Email),
			BusinessType: stripe.String("individual"),
			Capabilities: &stripe.AccountCapabilitiesParams{
				CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
				Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
			},
		})
		if err != nil {
			s.ErrorLog.Printf("stripe account create for user %d: %v", userID, err)
			return "", models.ErrExternalService
		}
		accountID = acct.ID
		if err := s.ProfileRepo.SetStripeAccountID(ctx, userID, accountID); err != nil {
			return "", err
		}
	}

	link, err := s.Client.AccountLinks.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(s.BaseURL + "/cleaner/payments?refresh=1"),
		ReturnURL:  stripe.String(s.BaseURL + "/cleaner/payments?onboarded=1"),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		s.ErrorLog.Printf("stripe account link for user %d: %v", userID, err)
		return "", models.ErrExternalService
	}
	return link.URL, nil
}

// AccountStatus re-reads the live account. The webhook normally keeps the
// onboarded flag current; this path covers the return-from-Stripe redirect
// that can beat the webhook.
func (s *StripeService) AccountStatus(ctx context.Context, userID int) (models.StripeAccountStatus, error) {
	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.StripeAccountStatus{}, err
	}
	if profile.StripeAccountID == nil || *profile.StripeAccountID == "" {
		return models.StripeAccountStatus{Connected: false}, nil
	}

	acct, err := s.Client.Accounts.GetByID(*profile.StripeAccountID, nil)
	if err != nil {
		s.ErrorLog.Printf("stripe account fetch %s: %v", *profile.StripeAccountID, err)
		return models.StripeAccountStatus{}, models.ErrExternalService
	}

	onboarded := acct.ChargesEnabled && acct.PayoutsEnabled
	if onboarded != profile.StripeOnboarded {
		if err := s.ProfileRepo.SetStripeOnboardedByAccount(ctx, acct.ID, onboarded); err != nil {
			return models.StripeAccountStatus{}, err
		}
	}

	return models.StripeAccountStatus{
		Connected:      true,
		Onboarded:      onboarded,
		ChargesEnabled: acct.ChargesEnabled,
		PayoutsEnabled: acct.PayoutsEnabled,
	}, nil
}

// CreateCheckout builds the escrow-style checkout for a confirmed job. The
// charge lands on the platform, the payout transfers to the cleaner's
// connected account, and the platform fee is kept back as
// application_fee_amount. Stripe works in cents, so the decimal split is
// converted at the boundary.
func (s *StripeService) CreateCheckout(ctx context.Context, jobID, actorID int) (string, error) {
	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	if job.ClientID != actorID {
		return "", models.ErrForbidden
	}
	if job.Status != lifecycle.StatusConfirmed {
		return "", models.ErrInvalidTransition
	}
	if job.AgreedPrice == nil || job.PlatformFee == nil || job.CleanerID == nil {
		return "", models.ErrNoAgreedPrice
	}

	profile, err := s.ProfileRepo.GetByUserID(ctx, *job.CleanerID)
	if err != nil {
		return "", err
	}
	if profile.StripeAccountID == nil || !profile.StripeOnboarded {
		return "", models.ErrCleanerNotOnboarded
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("Enclosure cleanup: " + job.Title),
					Description: stripe.String(fmt.Sprintf("Job #%d", job.ID)),
				},
				UnitAmount: stripe.Int64(pricing.Cents(*job.AgreedPrice)),
			},
			Quantity: stripe.Int64(1),
		}},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(pricing.Cents(*job.PlatformFee)),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(*profile.StripeAccountID),
			},
			Metadata: map[string]string{"job_id": fmt.Sprintf("%d", job.ID)},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/client/jobs/%d?payment=success", s.BaseURL, job.ID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/client/jobs/%d?payment=cancelled", s.BaseURL, job.ID)),
		Params: stripe.Params{
			// The client library replays network retries under the same key,
			// so a transient failure cannot mint two sessions.
			IdempotencyKey: stripe.String(uuid.NewString()),
			Metadata:       map[string]string{"job_id": fmt.Sprintf("%d", job.ID)},
		},
	}

	session, err := s.Client.CheckoutSessions.New(params)
	if err != nil {
		s.ErrorLog.Printf("stripe checkout session for job %d: %v", job.ID, err)
		return "", models.ErrExternalService
	}
	return session.URL, nil
}

// HandleWebhook verifies the signature and dispatches the two events the
// marketplace depends on. Stripe retries delivery, so each event id is
// claimed in Redis first and the status update itself is guarded, making
// duplicate deliveries harmless.
func (s *StripeService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.WebhookSecret)
	if err != nil {
		return models.ErrInvalidInput
	}

	if !s.claimEvent(ctx, event.ID) {
		return nil
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return models.ErrInvalidInput
		}
		return s.handleCheckoutCompleted(ctx, session)
	case "account.updated":
		var acct stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
			return models.ErrInvalidInput
		}
		onboarded := acct.ChargesEnabled && acct.PayoutsEnabled
		return s.ProfileRepo.SetStripeOnboardedByAccount(ctx, acct.ID, onboarded)
	}
	return nil
}

// claimEvent marks the event id as processed. When Redis is down we fall
// through and rely on the status-guarded UPDATE instead of dropping the
// event.
func (s *StripeService) claimEvent(ctx context.Context, eventID string) bool {
	if s.Redis == nil {
		return true
	}
	ok, err := s.Redis.SetNX(ctx, "stripe:event:"+eventID, 1, 72*time.Hour).Result()
	if err != nil {
		s.ErrorLog.Printf("stripe event dedup %s: %v", eventID, err)
		return true
	}
	return ok
}

func (s *StripeService) handleCheckoutCompleted(ctx context.Context, session stripe.CheckoutSession) error {
	jobIDStr, ok := session.Metadata["job_id"]
	if !ok {
		return nil
	}
	var jobID int
	if _, err := fmt.Sscanf(jobIDStr, "%d", &jobID); err != nil {
		return models.ErrInvalidInput
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	transitioned, err := s.JobRepo.MarkPaid(ctx, jobID, paymentIntentID)
	if err != nil {
		return err
	}
	if !transitioned {
		// Replay or out-of-order delivery; the first one won.
		return nil
	}

	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	if s.Notify != nil {
		s.Notify.JobStatusChanged(job.ID, job.Status, job.ClientID, job.CleanerID)
	}
	if s.Email != nil && job.CleanerID != nil && job.CleanerPayout != nil {
		cleaner, cerr := s.UserRepo.GetUserByID(ctx, *job.CleanerID)
		if cerr == nil {
			s.Email.PaymentProcessed(cleaner.Email, cleaner.Name, job.Title, *job.CleanerPayout, job.ID)
			s.Push.Notify(ctx, cleaner.ID, "Payment on the way", "You've been paid for "+job.Title, s.Email.jobLink("cleaner", job.ID))
		}
	}
	return nil
}
