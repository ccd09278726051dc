// Package store provides the sqlite-backed record store holding the
// read-only reference data: curated treatments, regional disease alerts,
// and market prices. The pipeline only reads; the single writer is the
// scheduled purge of expired alerts.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS disease_treatments (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		disease_name         TEXT NOT NULL,
		treatment_name       TEXT NOT NULL,
		active_ingredient    TEXT DEFAULT '',
		application_method   TEXT DEFAULT '',
		dosage               TEXT DEFAULT '',
		frequency            TEXT DEFAULT '',
		timing               TEXT DEFAULT '',
		effectiveness_rating REAL NOT NULL DEFAULT 0,
		organic              INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_treatments_disease ON disease_treatments(disease_name);

	CREATE TABLE IF NOT EXISTS regional_disease_alerts (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		region              TEXT NOT NULL,
		disease_name        TEXT NOT NULL,
		alert_level         TEXT NOT NULL DEFAULT 'low',
		description         TEXT DEFAULT '',
		prevention_measures TEXT DEFAULT '',
		expires_at          DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_disease ON regional_disease_alerts(disease_name);
	CREATE INDEX IF NOT EXISTS idx_alerts_expires ON regional_disease_alerts(expires_at);

	CREATE TABLE IF NOT EXISTS market_prices (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		crop         TEXT NOT NULL,
		price        REAL NOT NULL,
		unit         TEXT NOT NULL DEFAULT '',
		change       REAL NOT NULL DEFAULT 0,
		trend        TEXT NOT NULL DEFAULT 'stable',
		market       TEXT NOT NULL DEFAULT '',
		last_updated DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_prices_crop ON market_prices(crop);

	CREATE TABLE IF NOT EXISTS market_trends (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		crop       TEXT NOT NULL,
		prediction TEXT NOT NULL,
		confidence INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// TreatmentsFor returns the curated treatments whose disease name partially
// matches key (case-insensitive), best-rated first, at most three. An empty
// result means "no curated data", not an error.
func (s *Store) TreatmentsFor(ctx context.Context, key string) ([]domain.TreatmentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT treatment_name, active_ingredient, application_method, dosage,
		        frequency, timing, effectiveness_rating, organic
		   FROM disease_treatments
		  WHERE disease_name LIKE '%' || ? || '%'
		  ORDER BY effectiveness_rating DESC
		  LIMIT 3`,
		key,
	)
	if err != nil {
		return nil, domain.WrapError("query_treatments", err, false)
	}
	defer rows.Close()

	var out []domain.TreatmentRecord
	for rows.Next() {
		var t domain.TreatmentRecord
		var organic int
		if err := rows.Scan(&t.Name, &t.ActiveIngredient, &t.ApplicationMethod,
			&t.Dosage, &t.Frequency, &t.Timing, &t.EffectivenessRating, &organic); err != nil {
			return nil, domain.WrapError("scan_treatment", err, false)
		}
		t.Organic = organic != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

// ActiveAlertsFor returns unexpired alerts matching key, most severe first,
// at most three. A non-empty region restricts results to that region.
func (s *Store) ActiveAlertsFor(ctx context.Context, key, region string, now time.Time) ([]domain.RegionalAlert, error) {
	query := `SELECT region, disease_name, alert_level, description, prevention_measures, expires_at
		   FROM regional_disease_alerts
		  WHERE disease_name LIKE '%' || ? || '%'
		    AND expires_at >= ?`
	args := []any{key, now.UTC()}
	if region != "" {
		query += ` AND region LIKE '%' || ? || '%'`
		args = append(args, region)
	}
	// Rank levels explicitly: ordering the raw strings would put "medium"
	// ahead of "high".
	query += `
		  ORDER BY CASE alert_level
		             WHEN 'high' THEN 3
		             WHEN 'medium' THEN 2
		             ELSE 1
		           END DESC
		  LIMIT 3`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapError("query_alerts", err, false)
	}
	defer rows.Close()

	var out []domain.RegionalAlert
	for rows.Next() {
		var a domain.RegionalAlert
		if err := rows.Scan(&a.Region, &a.ConditionName, &a.AlertLevel,
			&a.Description, &a.PreventionMeasures, &a.ExpiresAt); err != nil {
			return nil, domain.WrapError("scan_alert", err, false)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// PurgeExpiredAlerts deletes alerts whose expiry is in the past and
// returns the number removed.
func (s *Store) PurgeExpiredAlerts(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM regional_disease_alerts WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, domain.WrapError("purge_alerts", err, false)
	}
	return res.RowsAffected()
}

// MarketReport returns prices and trends, optionally filtered to the given
// crops (case-insensitive exact crop names).
func (s *Store) MarketReport(ctx context.Context, location string, crops []string) (*domain.MarketReport, error) {
	report := &domain.MarketReport{
		Location:     location,
		Prices:       []domain.MarketPrice{},
		MarketTrends: []domain.MarketTrend{},
	}
	if report.Location == "" {
		report.Location = "Local Market"
	}

	wanted := make(map[string]bool, len(crops))
	for _, c := range crops {
		wanted[normalizeCrop(c)] = true
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT crop, price, unit, change, trend, market, last_updated
		   FROM market_prices ORDER BY crop`)
	if err != nil {
		return nil, domain.WrapError("query_prices", err, false)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.MarketPrice
		if err := rows.Scan(&p.Crop, &p.Price, &p.Unit, &p.Change, &p.Trend,
			&p.Market, &p.LastUpdated); err != nil {
			return nil, domain.WrapError("scan_price", err, false)
		}
		if len(wanted) > 0 && !wanted[normalizeCrop(p.Crop)] {
			continue
		}
		report.Prices = append(report.Prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trendRows, err := s.db.QueryContext(ctx,
		`SELECT crop, prediction, confidence FROM market_trends ORDER BY crop`)
	if err != nil {
		return nil, domain.WrapError("query_trends", err, false)
	}
	defer trendRows.Close()

	for trendRows.Next() {
		var t domain.MarketTrend
		if err := trendRows.Scan(&t.Crop, &t.Prediction, &t.Confidence); err != nil {
			return nil, domain.WrapError("scan_trend", err, false)
		}
		if len(wanted) > 0 && !wanted[normalizeCrop(t.Crop)] {
			continue
		}
		report.MarketTrends = append(report.MarketTrends, t)
	}
	return report, trendRows.Err()
}

func normalizeCrop(crop string) string {
	out := make([]byte, 0, len(crop))
	for i := 0; i < len(crop); i++ {
		c := crop[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != ' ' {
			out = append(out, c)
		}
	}
	return string(out)
}
