package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/re-hustle/rehustle-api/internal/deal"
	"github.com/re-hustle/rehustle-api/internal/user"
)

var ErrNotConfigured = errors.New("crm not configured")

// Syncer routes a deal to the adapter matching the owner's preferred CRM and
// records the outcome in the sync log.
type Syncer struct {
	formatter Formatter
	adapters  map[string]Adapter
	log       *SyncLog
}

func NewSyncer(f Formatter, log *SyncLog) *Syncer {
	return &Syncer{formatter: f, adapters: defaultAdapters(), log: log}
}

// WithAdapter replaces the adapter for one CRM. Used by tests and for
// per-deploy endpoint overrides.
func (s *Syncer) WithAdapter(name string, a Adapter) *Syncer {
	s.adapters[name] = a
	return s
}

func (s *Syncer) SyncDeal(ctx context.Context, d deal.Deal, owner user.User) error {
	if owner.PreferredCRM == "" || owner.PreferredCRM == "None" || owner.CRMAPIKey == "" {
		return ErrNotConfigured
	}
	a, ok := s.adapters[owner.PreferredCRM]
	if !ok {
		return fmt.Errorf("unsupported CRM: %s", owner.PreferredCRM)
	}
	payload, err := s.formatter.Format(d, owner.PreferredCRM)
	if err == nil {
		err = a.Push(ctx, payload, owner.CRMAPIKey)
	}
	s.record(ctx, d, owner.PreferredCRM, err)
	return err
}

func (s *Syncer) record(ctx context.Context, d deal.Deal, crmName string, pushErr error) {
	if s.log == nil {
		return
	}
	e := SyncEntry{DealID: d.ID, UserID: d.UserID, CRM: crmName, Status: "ok"}
	if pushErr != nil {
		e.Status = "failed"
		e.Error = pushErr.Error()
	}
	_ = s.log.Append(ctx, e)
}
