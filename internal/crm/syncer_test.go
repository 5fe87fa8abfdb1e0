package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/re-hustle/rehustle-api/internal/db"
	"github.com/re-hustle/rehustle-api/internal/user"
)

func TestSyncDealPostsToWebhookURL(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSyncer(Formatter{}, nil)
	owner := user.User{ID: "u1", PreferredCRM: GoHighLevel, CRMAPIKey: srv.URL}
	if err := s.SyncDeal(context.Background(), sampleDeal(), owner); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if auth != "" {
		t.Fatalf("webhook CRMs must not send Authorization, got %q", auth)
	}
	if got["property_address"] != "123 Dirt Rd" {
		t.Fatalf("payload = %v", got)
	}
}

func TestSyncDealSendsBearerForTokenCRMs(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSyncer(Formatter{}, nil).
		WithAdapter(Podio, &httpAdapter{name: Podio, endpoint: srv.URL, bearer: true, http: newRetryClient()})
	owner := user.User{ID: "u1", PreferredCRM: Podio, CRMAPIKey: "tok-123"}
	if err := s.SyncDeal(context.Background(), sampleDeal(), owner); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if auth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", auth)
	}
}

func TestSyncDealNotConfigured(t *testing.T) {
	s := NewSyncer(Formatter{}, nil)
	for _, owner := range []user.User{
		{PreferredCRM: "None", CRMAPIKey: "x"},
		{PreferredCRM: "", CRMAPIKey: "x"},
		{PreferredCRM: GoHighLevel, CRMAPIKey: ""},
	} {
		if err := s.SyncDeal(context.Background(), sampleDeal(), owner); err != ErrNotConfigured {
			t.Fatalf("owner %+v: err = %v, want ErrNotConfigured", owner, err)
		}
	}
}

func TestSyncDealUnsupportedCRM(t *testing.T) {
	s := NewSyncer(Formatter{}, nil)
	owner := user.User{PreferredCRM: "Salesforce", CRMAPIKey: "x"}
	err := s.SyncDeal(context.Background(), sampleDeal(), owner)
	if err == nil || !strings.Contains(err.Error(), "unsupported CRM") {
		t.Fatalf("err = %v", err)
	}
}

func TestSyncDealRecordsOutcome(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, "file:crm_synclog_test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()
	log := NewSyncLog(conn)

	fail := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer fail.Close()

	s := NewSyncer(Formatter{}, log)
	d := sampleDeal()
	owner := user.User{ID: d.UserID, PreferredCRM: GoHighLevel, CRMAPIKey: fail.URL}
	if err := s.SyncDeal(ctx, d, owner); err == nil {
		t.Fatal("expected push error")
	}

	entries, err := log.ListByDeal(ctx, d.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Status != "failed" || entries[0].CRM != GoHighLevel {
		t.Fatalf("entry = %+v", entries[0])
	}
	if entries[0].Error == "" {
		t.Fatal("failed entry should carry the push error")
	}
}
