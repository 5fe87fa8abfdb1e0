package billing

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/subscription"
	"github.com/stripe/stripe-go/v78/webhook"
)

const maxWebhookBody = 1 << 20 // Stripe events are small; 1MB is generous

// WebhookHandler verifies and applies Stripe events. Signature verification
// uses the raw body, so this route must not sit behind any body-rewriting
// middleware.
func (s *Stripe) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		sig := r.Header.Get("Stripe-Signature")
		if sig == "" {
			http.Error(w, "missing Stripe signature", http.StatusBadRequest)
			return
		}
		event, err := webhook.ConstructEvent(payload, sig, s.cfg.WebhookSecret)
		if err != nil {
			http.Error(w, "signature verification failed", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		if s.redis != nil {
			fresh, err := s.redis.SetNX(ctx, "stripe:evt:"+event.ID, "1", 24*time.Hour)
			if err == nil && !fresh {
				// replayed delivery; acknowledge without reapplying
				_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
				return
			}
		}

		if err := s.applyEvent(ctx, event); err != nil {
			log.Printf("stripe webhook %s (%s): %v", event.ID, event.Type, err)
			http.Error(w, "webhook handler failed", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
	}
}

func (s *Stripe) applyEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return err
		}
		return s.handleCheckoutCompleted(ctx, &cs)
	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.users.SetSubscriptionStatusByID(ctx, sub.ID, string(sub.Status),
			sub.CurrentPeriodEnd, subscriptionActive(sub.Status))
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.users.ClearSubscriptionByID(ctx, sub.ID)
	default:
		log.Printf("unhandled stripe event type: %s", event.Type)
		return nil
	}
}

func (s *Stripe) handleCheckoutCompleted(ctx context.Context, cs *stripe.CheckoutSession) error {
	if cs.Mode != stripe.CheckoutSessionModeSubscription {
		return nil
	}
	userID := cs.Metadata["user_id"]
	if userID == "" {
		log.Printf("checkout session %s has no user_id metadata", cs.ID)
		return nil
	}
	if cs.Subscription == nil {
		return nil
	}
	sub, err := subscription.Get(cs.Subscription.ID, nil)
	if err != nil {
		return err
	}
	return s.applySubscription(ctx, userID, customerID(cs), sub)
}
