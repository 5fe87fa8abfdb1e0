package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

func Healthz(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

// DBHealthHandler pings the database with a short deadline.
func DBHealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			errJSON(w, r, http.StatusServiceUnavailable, "db_unavailable", err.Error())
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
