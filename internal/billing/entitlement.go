// Package billing owns subscription state: the 7-day trial gate, Stripe
// checkout and the webhook that keeps user records in sync.
package billing

import (
	"context"
	"net/http"
	"time"

	authmw "github.com/re-hustle/rehustle-api/internal/auth/middleware"
	"github.com/re-hustle/rehustle-api/internal/redisx"
	"github.com/re-hustle/rehustle-api/internal/user"
)

// Access is the outcome of an entitlement check.
type Access struct {
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason"` // lifetime|subscribed|trial|expired
	TrialEndsAt int64  `json:"trial_ends_at,omitempty"`
}

// Entitlement decides whether an account may use the analyzer: lifetime
// access, an active subscription, or a still-running trial.
type Entitlement struct {
	users user.Store
	trial time.Duration
	cache *redisx.Client // optional; positive results only
	now   func() time.Time
}

func NewEntitlement(users user.Store, trialDays int, cache *redisx.Client) *Entitlement {
	return &Entitlement{
		users: users,
		trial: time.Duration(trialDays) * 24 * time.Hour,
		cache: cache,
		now:   time.Now,
	}
}

func (e *Entitlement) Check(ctx context.Context, userID string) (Access, error) {
	if e.cache != nil {
		if v, err := e.cache.Get(ctx, entitlementKey(userID)); err == nil && v == "1" {
			return Access{Allowed: true, Reason: "cached"}, nil
		}
	}
	u, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return Access{}, err
	}
	acc := e.evaluate(u)
	if acc.Allowed && e.cache != nil {
		_ = e.cache.Set(ctx, entitlementKey(userID), "1", time.Minute)
	}
	return acc, nil
}

func (e *Entitlement) evaluate(u user.User) Access {
	switch {
	case u.LifetimeAccess:
		return Access{Allowed: true, Reason: "lifetime"}
	case u.IsSubscribed:
		return Access{Allowed: true, Reason: "subscribed"}
	}
	trialEnd := time.Unix(u.TrialStart, 0).Add(e.trial)
	if e.now().Before(trialEnd) {
		return Access{Allowed: true, Reason: "trial", TrialEndsAt: trialEnd.Unix()}
	}
	return Access{Allowed: false, Reason: "expired", TrialEndsAt: trialEnd.Unix()}
}

// Middleware gates a route group behind an entitlement check. Runs after the
// JWT middleware so the subject is already in context.
func (e *Entitlement) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		acc, err := e.Check(r.Context(), sub)
		if err != nil {
			http.Error(w, "entitlement check failed", http.StatusInternalServerError)
			return
		}
		if !acc.Allowed {
			http.Error(w, "subscription required", http.StatusPaymentRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func entitlementKey(userID string) string { return "entitlement:" + userID }
