package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const statsSchema = `
CREATE TABLE IF NOT EXISTS requests (
    id            TEXT PRIMARY KEY,
    method        TEXT NOT NULL,
    path          TEXT NOT NULL,
    status        INTEGER NOT NULL,
    ip_address    TEXT NOT NULL,
    user_agent    TEXT NOT NULL,
    served_at     DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS stats_ip (
    ip_address    TEXT PRIMARY KEY,
    total_hits    INTEGER NOT NULL DEFAULT 1,
    first_seen    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS stats_user_agent (
    user_agent    TEXT PRIMARY KEY,
    total_hits    INTEGER NOT NULL DEFAULT 1,
    first_seen    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL
);
`

// RequestRecord describes one served request as written to the access log.
type RequestRecord struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ServedAt  time.Time `json:"served_at"`
}

// StatsSummary provides a high-level overview of all collected stats.
type StatsSummary struct {
	TotalRequests    int64 `json:"total_requests"`
	UniqueIPs        int64 `json:"unique_ips"`
	UniqueUserAgents int64 `json:"unique_user_agents"`
}

// AccessLog persists served requests to sqlite. Recording never blocks a
// response: the page handler logs on a best-effort basis and a failed
// write only produces a log line.
type AccessLog struct {
	db     *sql.DB
	logger *slog.Logger
}

func setupStatsSchema(db *sql.DB) error {
	_, err := db.Exec(statsSchema)
	return err
}

func NewAccessLog(db *sql.DB, logger *slog.Logger) *AccessLog {
	return &AccessLog{
		db:     db,
		logger: logger,
	}
}

// RegisterRoutes sets up the observability endpoints.
func (a *AccessLog) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/stats", a.handleSummary)
}

// Record writes one request row and updates the per-IP and per-user-agent
// hit counters in a single transaction.
func (a *AccessLog) Record(ctx context.Context, rec RequestRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := rec.ServedAt
	if now.IsZero() {
		now = time.Now()
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	_, err = tx.ExecContext(ctx, `
        INSERT INTO requests (id, method, path, status, ip_address, user_agent, served_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, rec.ID, rec.Method, rec.Path, rec.Status, rec.IPAddress, rec.UserAgent, now)
	if err != nil {
		return fmt.Errorf("failed to insert request row: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO stats_ip (ip_address, first_seen, last_seen) VALUES (?, ?, ?)
        ON CONFLICT(ip_address) DO UPDATE SET total_hits = total_hits + 1, last_seen = ?
    `, rec.IPAddress, now, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert stats_ip: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO stats_user_agent (user_agent, first_seen, last_seen) VALUES (?, ?, ?)
        ON CONFLICT(user_agent) DO UPDATE SET total_hits = total_hits + 1, last_seen = ?
    `, rec.UserAgent, now, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert stats_user_agent: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats transaction: %w", err)
	}
	return nil
}

// Summary aggregates the access log into the totals served by /stats.
func (a *AccessLog) Summary(ctx context.Context) (StatsSummary, error) {
	var summary StatsSummary
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM requests").Scan(&summary.TotalRequests); err != nil {
		return summary, fmt.Errorf("failed to count requests: %w", err)
	}
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stats_ip").Scan(&summary.UniqueIPs); err != nil {
		return summary, fmt.Errorf("failed to count unique IPs: %w", err)
	}
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stats_user_agent").Scan(&summary.UniqueUserAgents); err != nil {
		return summary, fmt.Errorf("failed to count unique user agents: %w", err)
	}
	return summary, nil
}

func (a *AccessLog) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.db.PingContext(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *AccessLog) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Summary(r.Context())
	if err != nil {
		a.logger.Error("Failed to build stats summary", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		err := json.NewEncoder(w).Encode(payload)
		if err != nil {
			fmt.Printf("ERROR: Failed to encode JSON response: %v\n", err)
		}
	}
}
