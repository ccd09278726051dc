package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// A file-backed database: with ":memory:" every pooled connection
	// gets its own empty schema.
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTreatment(t *testing.T, s *Store, disease, name string, rating float64) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO disease_treatments (disease_name, treatment_name, effectiveness_rating, organic)
		 VALUES (?, ?, ?, 0)`,
		disease, name, rating,
	)
	require.NoError(t, err)
}

func insertAlert(t *testing.T, s *Store, region, disease, level string, expiresAt time.Time) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO regional_disease_alerts (region, disease_name, alert_level, expires_at)
		 VALUES (?, ?, ?, ?)`,
		region, disease, level, expiresAt.UTC(),
	)
	require.NoError(t, err)
}

func TestTreatmentsFor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTreatment(t, s, "Tomato Late Blight", "Copper Fungicide Spray", 4.5)
	insertTreatment(t, s, "Tomato Late Blight", "Mancozeb Treatment", 4.2)
	insertTreatment(t, s, "Tomato Late Blight", "Chlorothalonil Spray", 4.0)
	insertTreatment(t, s, "Tomato Late Blight", "Weak Home Remedy", 2.1)
	insertTreatment(t, s, "Apple Scab", "Sulfur Dust", 3.7)

	got, err := s.TreatmentsFor(ctx, "Tomato Late")
	require.NoError(t, err)

	// At most three, best rated first.
	require.Len(t, got, 3)
	assert.Equal(t, "Copper Fungicide Spray", got[0].Name)
	assert.Equal(t, "Mancozeb Treatment", got[1].Name)
	assert.Equal(t, "Chlorothalonil Spray", got[2].Name)
}

func TestTreatmentsFor_NoMatch(t *testing.T) {
	s := newTestStore(t)

	got, err := s.TreatmentsFor(context.Background(), "Banana Panama")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestActiveAlertsFor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	future := now.Add(72 * time.Hour)

	insertAlert(t, s, "Punjab", "Tomato Late Blight", "medium", future)
	insertAlert(t, s, "Haryana", "Tomato Late Blight", "high", future)
	insertAlert(t, s, "Punjab", "Tomato Late Blight", "low", future)
	insertAlert(t, s, "Punjab", "Tomato Late Blight", "high", now.Add(-time.Hour)) // expired
	insertAlert(t, s, "Punjab", "Apple Scab", "high", future)

	got, err := s.ActiveAlertsFor(ctx, "Tomato Late", "", now)
	require.NoError(t, err)

	// Severity rank decides the order, not the alphabetical level string.
	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].AlertLevel)
	assert.Equal(t, "medium", got[1].AlertLevel)
	assert.Equal(t, "low", got[2].AlertLevel)
}

func TestActiveAlertsFor_RegionFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	future := now.Add(72 * time.Hour)

	insertAlert(t, s, "Punjab", "Tomato Late Blight", "medium", future)
	insertAlert(t, s, "Haryana", "Tomato Late Blight", "high", future)

	got, err := s.ActiveAlertsFor(ctx, "Tomato Late", "Punjab", now)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Punjab", got[0].Region)
}

func TestPurgeExpiredAlerts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	insertAlert(t, s, "Punjab", "Tomato Late Blight", "high", now.Add(-time.Hour))
	insertAlert(t, s, "Punjab", "Apple Scab", "low", now.Add(-time.Minute))
	insertAlert(t, s, "Punjab", "Grape Black Rot", "medium", now.Add(time.Hour))

	purged, err := s.PurgeExpiredAlerts(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	remaining, err := s.ActiveAlertsFor(ctx, "Grape Black", "", now)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestSeed_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Seed(ctx, now))

	var first int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM disease_treatments`).Scan(&first))
	assert.Greater(t, first, 0)

	// A second seed run must not duplicate rows.
	require.NoError(t, s.Seed(ctx, now))

	var second int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM disease_treatments`).Scan(&second))
	assert.Equal(t, first, second)
}

func TestMarketReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Seed(ctx, now))

	report, err := s.MarketReport(ctx, "Ludhiana", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ludhiana", report.Location)
	assert.NotEmpty(t, report.Prices)
	assert.NotEmpty(t, report.MarketTrends)
}

func TestMarketReport_CropFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, time.Now()))

	report, err := s.MarketReport(ctx, "", []string{"Tomato"})
	require.NoError(t, err)

	// Empty location falls back to the default label.
	assert.Equal(t, "Local Market", report.Location)
	require.NotEmpty(t, report.Prices)
	for _, p := range report.Prices {
		assert.Equal(t, "tomato", normalizeCrop(p.Crop))
	}
}
