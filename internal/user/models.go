// Package user owns account records: credentials, profile, CRM preferences
// and subscription state.
package user

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`

	PreferredCRM      string `json:"preferred_crm"`
	CRMAPIKey         string `json:"-"`
	SyncAutomatically bool   `json:"sync_automatically"`

	TrialStart     int64 `json:"trial_start"`
	IsSubscribed   bool  `json:"is_subscribed"`
	LifetimeAccess bool  `json:"lifetime_access"`

	StripeCustomerID      string `json:"-"`
	StripeSubscriptionID  string `json:"-"`
	SubscriptionStatus    string `json:"subscription_status,omitempty"`
	SubscriptionPeriodEnd int64  `json:"subscription_period_end,omitempty"`

	CreatedAt int64 `json:"created_at"`
	LastLogin int64 `json:"last_login"`
}

// Settings is the account-settings surface a user may edit directly.
type Settings struct {
	FullName          string `json:"full_name"`
	PhoneNumber       string `json:"phone_number"`
	PreferredCRM      string `json:"preferred_crm"`
	CRMAPIKey         string `json:"crm_api_key"`
	SyncAutomatically bool   `json:"sync_automatically"`
}

// Subscription is the billing state written by the Stripe webhook flow.
type Subscription struct {
	CustomerID     string
	SubscriptionID string
	Status         string
	PeriodEnd      int64
	Active         bool
}
