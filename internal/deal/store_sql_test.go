package deal

import (
	"context"
	"errors"
	"testing"

	"github.com/re-hustle/rehustle-api/internal/db"
	"github.com/re-hustle/rehustle-api/internal/scoring"
	"github.com/re-hustle/rehustle-api/internal/user"
)

func newTestStore(t *testing.T) (*SQLStore, string) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite,
		"file:"+t.Name()+".db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	owner, err := user.NewSQLStore(conn).Create(ctx, t.Name()+"@test.com", "hash")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return NewSQLStore(conn), owner.ID
}

func testDeal(id, userID string) Deal {
	return Deal{
		ID:           id,
		UserID:       userID,
		PropertyType: scoring.Land,
		Address:      "1 Main St",
		Notes:        "drive by",
		Fields: scoring.Fields{
			"purchase_price": float64(30000),
			"market_value":   float64(60000),
		},
		SniperScore:      85,
		RiskLevel:        scoring.RiskGreen,
		ExitStrategy:     "Flip",
		RecommendedOffer: 42000,
		CreatedAt:        1700000000,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, owner := newTestStore(t)

	want := testDeal("d1", owner)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.GetByID(ctx, "d1", owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PropertyType != scoring.Land || got.SniperScore != 85 || got.RiskLevel != scoring.RiskGreen {
		t.Fatalf("got = %+v", got)
	}
	if got.Fields["purchase_price"] != float64(30000) {
		t.Fatalf("fields did not round-trip: %v", got.Fields)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	store, owner := newTestStore(t)
	if err := store.Save(ctx, testDeal("d1", owner)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.GetByID(ctx, "d1", "someone-else"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner get err = %v, want ErrNotFound", err)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, owner := newTestStore(t)

	older := testDeal("d-old", owner)
	older.CreatedAt = 1700000000
	newer := testDeal("d-new", owner)
	newer.CreatedAt = 1700000500
	for _, d := range []Deal{older, newer} {
		if err := store.Save(ctx, d); err != nil {
			t.Fatalf("save %s: %v", d.ID, err)
		}
	}

	got, err := store.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "d-new" || got[1].ID != "d-old" {
		t.Fatalf("order = %v", dealIDs(got))
	}

	empty, err := store.ListByUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no deals, got %v", dealIDs(empty))
	}
}

func TestUpdateEditableFieldsOnly(t *testing.T) {
	ctx := context.Background()
	store, owner := newTestStore(t)
	if err := store.Save(ctx, testDeal("d1", owner)); err != nil {
		t.Fatalf("save: %v", err)
	}

	addr := "2 Oak Ave"
	got, err := store.Update(ctx, "d1", owner, Update{Address: &addr})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Address != "2 Oak Ave" {
		t.Fatalf("address = %q", got.Address)
	}
	if got.Notes != "drive by" {
		t.Fatalf("nil notes must be left alone, got %q", got.Notes)
	}
	if got.SniperScore != 85 {
		t.Fatal("analysis outputs must be immutable on update")
	}
	if got.UpdatedAt == 0 {
		t.Fatal("updated_at not stamped")
	}

	if _, err := store.Update(ctx, "d1", "someone-else", Update{Address: &addr}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner update err = %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, owner := newTestStore(t)
	if err := store.Save(ctx, testDeal("d1", owner)); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Delete(ctx, "d1", "someone-else"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner delete err = %v", err)
	}
	if err := store.Delete(ctx, "d1", owner); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "d1", owner); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func dealIDs(ds []Deal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}
