package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/subscription"

	"github.com/re-hustle/rehustle-api/internal/redisx"
	"github.com/re-hustle/rehustle-api/internal/user"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceCents    int64
	ProductName   string
}

// Stripe wraps checkout and subscription reconciliation.
type Stripe struct {
	cfg   StripeConfig
	users user.Store
	redis *redisx.Client // optional: replay guard + entitlement cache invalidation
}

func NewStripe(cfg StripeConfig, users user.Store, redis *redisx.Client) *Stripe {
	if cfg.ProductName == "" {
		cfg.ProductName = "RE Hustle Pro Subscription"
	}
	stripe.Key = cfg.SecretKey
	return &Stripe{cfg: cfg, users: users, redis: redis}
}

// CreateCheckoutSession opens a monthly subscription checkout for the user
// and returns the hosted payment URL.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, u user.User, origin string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(s.cfg.PriceCents),
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String("month"),
				},
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(s.cfg.ProductName),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:    stripe.String(origin + "/subscription-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(origin + "/upgrade?canceled=true"),
		CustomerEmail: stripe.String(u.Email),
	}
	params.Context = ctx
	params.AddMetadata("user_id", u.ID)

	cs, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return cs.URL, nil
}

// VerifySession reconciles a completed checkout against Stripe and marks the
// user subscribed. Used by the success page when the webhook has not landed.
func (s *Stripe) VerifySession(ctx context.Context, userID, sessionID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	cs, err := session.Get(sessionID, params)
	if err != nil {
		return false, err
	}
	if cs.Metadata["user_id"] != userID {
		return false, errors.New("session does not belong to user")
	}
	if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid || cs.Subscription == nil {
		return false, nil
	}
	sub, err := subscription.Get(cs.Subscription.ID, nil)
	if err != nil {
		return false, err
	}
	if err := s.applySubscription(ctx, userID, customerID(cs), sub); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Stripe) applySubscription(ctx context.Context, userID, custID string, sub *stripe.Subscription) error {
	err := s.users.SetSubscription(ctx, userID, user.Subscription{
		CustomerID:     custID,
		SubscriptionID: sub.ID,
		Status:         string(sub.Status),
		PeriodEnd:      sub.CurrentPeriodEnd,
		Active:         subscriptionActive(sub.Status),
	})
	if err != nil {
		return err
	}
	s.invalidateEntitlement(ctx, userID)
	return nil
}

func (s *Stripe) invalidateEntitlement(ctx context.Context, userID string) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, entitlementKey(userID))
	}
}

func subscriptionActive(status stripe.SubscriptionStatus) bool {
	return status == stripe.SubscriptionStatusActive || status == stripe.SubscriptionStatusTrialing
}

func customerID(cs *stripe.CheckoutSession) string {
	if cs.Customer == nil {
		return ""
	}
	return cs.Customer.ID
}
