package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, email, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	UpdateSettings(ctx context.Context, id string, s Settings) error
	SetSubscription(ctx context.Context, id string, sub Subscription) error
	SetSubscriptionStatusByID(ctx context.Context, stripeSubscriptionID, status string, periodEnd int64, active bool) error
	ClearSubscriptionByID(ctx context.Context, stripeSubscriptionID string) error
	TouchLogin(ctx context.Context, id string) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const userColumns = `id,email,password_hash,full_name,phone_number,preferred_crm,crm_api_key,
	sync_automatically,trial_start,is_subscribed,lifetime_access,
	stripe_customer_id,stripe_subscription_id,subscription_status,subscription_period_end,
	created_at,last_login`

func (s *SQLStore) Create(ctx context.Context, email, passwordHash string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().Unix()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		PreferredCRM: "None",
		TrialStart:   now,
		CreatedAt:    now,
		LastLogin:    now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,email,password_hash,trial_start,created_at,last_login)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.PasswordHash, u.TrialStart, u.CreatedAt, u.LastLogin)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (s *SQLStore) UpdateSettings(ctx context.Context, id string, set Settings) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET full_name=$1, phone_number=$2, preferred_crm=$3, crm_api_key=$4,
		 sync_automatically=$5 WHERE id=$6`,
		set.FullName, set.PhoneNumber, set.PreferredCRM, set.CRMAPIKey,
		boolToInt(set.SyncAutomatically), id)
	if err != nil {
		return err
	}
	return checkUpdated(res)
}

func (s *SQLStore) SetSubscription(ctx context.Context, id string, sub Subscription) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_subscribed=$1, stripe_customer_id=$2, stripe_subscription_id=$3,
		 subscription_status=$4, subscription_period_end=$5 WHERE id=$6`,
		boolToInt(sub.Active), sub.CustomerID, sub.SubscriptionID, sub.Status, sub.PeriodEnd, id)
	if err != nil {
		return err
	}
	return checkUpdated(res)
}

func (s *SQLStore) SetSubscriptionStatusByID(ctx context.Context, stripeSubscriptionID, status string, periodEnd int64, active bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_subscribed=$1, subscription_status=$2, subscription_period_end=$3
		 WHERE stripe_subscription_id=$4`,
		boolToInt(active), status, periodEnd, stripeSubscriptionID)
	return err
}

func (s *SQLStore) ClearSubscriptionByID(ctx context.Context, stripeSubscriptionID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_subscribed=0, subscription_status='canceled'
		 WHERE stripe_subscription_id=$1`, stripeSubscriptionID)
	return err
}

func (s *SQLStore) TouchLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login=$1 WHERE id=$2`, time.Now().Unix(), id)
	return err
}

func (s *SQLStore) scanOne(row *sql.Row) (User, error) {
	var u User
	var syncAuto, subscribed, lifetime int
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.PhoneNumber,
		&u.PreferredCRM, &u.CRMAPIKey, &syncAuto, &u.TrialStart, &subscribed, &lifetime,
		&u.StripeCustomerID, &u.StripeSubscriptionID, &u.SubscriptionStatus,
		&u.SubscriptionPeriodEnd, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.SyncAutomatically = syncAuto != 0
	u.IsSubscribed = subscribed != 0
	u.LifetimeAccess = lifetime != 0
	return u, nil
}

func checkUpdated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
