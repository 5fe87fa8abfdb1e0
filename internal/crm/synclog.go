package crm

import (
	"context"
	"database/sql"
	"time"
)

// SyncEntry is one recorded push attempt for a deal.
type SyncEntry struct {
	ID        int64  `json:"id"`
	DealID    string `json:"deal_id"`
	UserID    string `json:"user_id"`
	CRM       string `json:"crm"`
	Status    string `json:"status"` // ok|failed
	Error     string `json:"error,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type SyncLog struct{ db *sql.DB }

func NewSyncLog(db *sql.DB) *SyncLog { return &SyncLog{db: db} }

func (l *SyncLog) Append(ctx context.Context, e SyncEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO crm_sync_log (deal_id, user_id, crm, status, error, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.DealID, e.UserID, e.CRM, e.Status, e.Error, time.Now().Unix())
	return err
}

func (l *SyncLog) ListByDeal(ctx context.Context, dealID string) ([]SyncEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, deal_id, user_id, crm, status, error, created_at
		 FROM crm_sync_log WHERE deal_id=$1 ORDER BY id DESC`, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SyncEntry{}
	for rows.Next() {
		var e SyncEntry
		if err := rows.Scan(&e.ID, &e.DealID, &e.UserID, &e.CRM, &e.Status, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
