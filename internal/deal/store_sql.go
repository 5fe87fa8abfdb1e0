package deal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/re-hustle/rehustle-api/internal/scoring"
)

type Store interface {
	Save(ctx context.Context, d Deal) error
	ListByUser(ctx context.Context, userID string) ([]Deal, error)
	GetByID(ctx context.Context, id, userID string) (Deal, error)
	Update(ctx context.Context, id, userID string, upd Update) (Deal, error)
	Delete(ctx context.Context, id, userID string) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const dealColumns = `id,user_id,property_type,address,notes,fields_json,
	sniper_score,risk_level,exit_strategy,recommended_offer,created_at,updated_at`

func (s *SQLStore) Save(ctx context.Context, d Deal) error {
	fj, err := json.Marshal(d.Fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deals (`+dealColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		d.ID, d.UserID, string(d.PropertyType), d.Address, d.Notes, string(fj),
		d.SniperScore, string(d.RiskLevel), d.ExitStrategy, d.RecommendedOffer,
		d.CreatedAt, d.UpdatedAt)
	return err
}

func (s *SQLStore) ListByUser(ctx context.Context, userID string) ([]Deal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetByID(ctx context.Context, id, userID string) (Deal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE id=$1 AND user_id=$2`, id, userID)
	d, err := scanDeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Deal{}, ErrNotFound
	}
	return d, err
}

func (s *SQLStore) Update(ctx context.Context, id, userID string, upd Update) (Deal, error) {
	d, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return Deal{}, err
	}
	if upd.Address != nil {
		d.Address = *upd.Address
	}
	if upd.Notes != nil {
		d.Notes = *upd.Notes
	}
	d.UpdatedAt = time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`UPDATE deals SET address=$1, notes=$2, updated_at=$3 WHERE id=$4 AND user_id=$5`,
		d.Address, d.Notes, d.UpdatedAt, id, userID)
	if err != nil {
		return Deal{}, err
	}
	return d, nil
}

func (s *SQLStore) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM deals WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (Deal, error) {
	var d Deal
	var pt, risk, fieldsJSON string
	err := row.Scan(&d.ID, &d.UserID, &pt, &d.Address, &d.Notes, &fieldsJSON,
		&d.SniperScore, &risk, &d.ExitStrategy, &d.RecommendedOffer,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Deal{}, err
	}
	d.PropertyType = scoring.PropertyType(pt)
	d.RiskLevel = scoring.RiskLevel(risk)
	if err := json.Unmarshal([]byte(fieldsJSON), &d.Fields); err != nil {
		return Deal{}, err
	}
	return d, nil
}
