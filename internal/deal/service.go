package deal

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/re-hustle/rehustle-api/internal/scoring"
	"github.com/re-hustle/rehustle-api/internal/user"
)

// CRMPusher forwards a saved deal to the owner's configured CRM. Implemented
// by the crm package; nil disables auto-sync.
type CRMPusher interface {
	SyncDeal(ctx context.Context, d Deal, owner user.User) error
}

// Service runs the scoring engine and persists the outcome.
type Service struct {
	engine *scoring.Engine
	store  Store
	users  user.Store
	crm    CRMPusher
}

func NewService(engine *scoring.Engine, store Store, users user.Store, crm CRMPusher) *Service {
	return &Service{engine: engine, store: store, users: users, crm: crm}
}

// AnalyzeRequest is a decoded deal submission.
type AnalyzeRequest struct {
	PropertyType string         `json:"property_type"`
	Address      string         `json:"address"`
	Notes        string         `json:"notes"`
	Fields       scoring.Fields `json:"fields"`
}

// Analyze scores the submission without persisting anything.
func (s *Service) Analyze(req AnalyzeRequest) (scoring.Result, error) {
	pt, err := scoring.ParsePropertyType(req.PropertyType)
	if err != nil {
		return scoring.Result{}, err
	}
	return s.engine.Analyze(pt, req.Fields)
}

// AnalyzeAndSave scores the submission and persists input, result and
// ownership metadata as one deal record. When the owner has automatic CRM
// sync configured the deal is pushed best-effort: a sync failure is logged,
// never surfaced as a save failure.
func (s *Service) AnalyzeAndSave(ctx context.Context, userID string, req AnalyzeRequest) (Deal, error) {
	res, err := s.Analyze(req)
	if err != nil {
		return Deal{}, err
	}
	d := Deal{
		ID:               uuid.NewString(),
		UserID:           userID,
		PropertyType:     res.PropertyType,
		Address:          req.Address,
		Notes:            req.Notes,
		Fields:           req.Fields,
		SniperScore:      res.SniperScore,
		RiskLevel:        res.RiskLevel,
		ExitStrategy:     res.ExitStrategy,
		RecommendedOffer: res.RecommendedOffer,
		CreatedAt:        time.Now().Unix(),
	}
	if err := s.store.Save(ctx, d); err != nil {
		return Deal{}, err
	}

	if s.crm != nil {
		owner, err := s.users.GetByID(ctx, userID)
		if err == nil && owner.SyncAutomatically && owner.PreferredCRM != "" && owner.PreferredCRM != "None" {
			if err := s.crm.SyncDeal(ctx, d, owner); err != nil {
				log.Printf("auto CRM sync failed for deal %s: %v", d.ID, err)
			}
		}
	}
	return d, nil
}

// Sync pushes an already-saved deal to the owner's CRM on demand.
func (s *Service) Sync(ctx context.Context, userID, dealID string) error {
	if s.crm == nil {
		return errors.New("crm sync not available")
	}
	d, err := s.store.GetByID(ctx, dealID, userID)
	if err != nil {
		return err
	}
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.crm.SyncDeal(ctx, d, owner)
}

func (s *Service) List(ctx context.Context, userID string) ([]Deal, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, dealID string) (Deal, error) {
	return s.store.GetByID(ctx, dealID, userID)
}

func (s *Service) Update(ctx context.Context, userID, dealID string, upd Update) (Deal, error) {
	return s.store.Update(ctx, dealID, userID, upd)
}

func (s *Service) Delete(ctx context.Context, userID, dealID string) error {
	return s.store.Delete(ctx, dealID, userID)
}
