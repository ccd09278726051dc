package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// fakeStore captures lookup arguments and returns canned results.
type fakeStore struct {
	treatments    []domain.TreatmentRecord
	treatmentsErr error
	alerts        []domain.RegionalAlert
	alertsErr     error

	lastTreatmentKey string
	lastAlertKey     string
	lastAlertRegion  string
}

func (f *fakeStore) TreatmentsFor(_ context.Context, key string) ([]domain.TreatmentRecord, error) {
	f.lastTreatmentKey = key
	return f.treatments, f.treatmentsErr
}

func (f *fakeStore) ActiveAlertsFor(_ context.Context, key, region string, _ time.Time) ([]domain.RegionalAlert, error) {
	f.lastAlertKey = key
	f.lastAlertRegion = region
	return f.alerts, f.alertsErr
}

func TestRetriever_For(t *testing.T) {
	store := &fakeStore{
		treatments: []domain.TreatmentRecord{
			{Name: "Copper fungicide", EffectivenessRating: 4.2},
		},
		alerts: []domain.RegionalAlert{
			{Region: "Punjab", ConditionName: "Tomato Late Blight", AlertLevel: "high"},
		},
	}
	retriever := NewRetriever(store, zap.NewNop())

	got := retriever.For(context.Background(), "Tomato Late Blight", "Punjab")

	if store.lastTreatmentKey != "Tomato Late" {
		t.Errorf("treatment lookup key = %q, want %q", store.lastTreatmentKey, "Tomato Late")
	}
	if store.lastAlertKey != "Tomato Late" {
		t.Errorf("alert lookup key = %q, want %q", store.lastAlertKey, "Tomato Late")
	}
	if store.lastAlertRegion != "Punjab" {
		t.Errorf("alert lookup region = %q, want %q", store.lastAlertRegion, "Punjab")
	}
	if len(got.Treatments) != 1 || got.Treatments[0].Name != "Copper fungicide" {
		t.Errorf("Treatments = %+v", got.Treatments)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].Region != "Punjab" {
		t.Errorf("Alerts = %+v", got.Alerts)
	}
	if len(got.Prevention) == 0 {
		t.Error("Prevention is empty")
	}
}

// Store failures must not block the diagnosis: the retriever degrades to
// empty, non-nil lists.
func TestRetriever_For_StoreFailure(t *testing.T) {
	store := &fakeStore{
		treatmentsErr: errors.New("database is locked"),
		alertsErr:     errors.New("database is locked"),
	}
	retriever := NewRetriever(store, zap.NewNop())

	got := retriever.For(context.Background(), "Tomato Late Blight", "")

	if got.Treatments == nil || len(got.Treatments) != 0 {
		t.Errorf("Treatments = %v, want empty non-nil slice", got.Treatments)
	}
	if got.Alerts == nil || len(got.Alerts) != 0 {
		t.Errorf("Alerts = %v, want empty non-nil slice", got.Alerts)
	}
	if len(got.Prevention) == 0 {
		t.Error("Prevention is empty despite store failure")
	}
}

func TestRetriever_Prevention(t *testing.T) {
	retriever := NewRetriever(&fakeStore{}, zap.NewNop())

	tests := []struct {
		name      string
		condition string
		want      []string
	}{
		{
			name:      "fungal keywords",
			condition: "Tomato Late Blight",
			want: []string{
				"Ensure proper air circulation around plants",
				"Avoid overhead watering",
				"Remove infected plant debris",
				"Regular crop rotation",
				"Maintain healthy soil conditions",
			},
		},
		{
			name:      "bacterial keywords",
			condition: "Peach Bacterial Spot",
			want: []string{
				"Use disease-free seeds",
				"Disinfect tools between plants",
				"Avoid working with wet plants",
				"Regular crop rotation",
				"Maintain healthy soil conditions",
			},
		},
		{
			name:      "no rule matches keeps the baseline",
			condition: "Citrus Greening Disease",
			want: []string{
				"Regular crop rotation",
				"Maintain healthy soil conditions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := retriever.Prevention(tt.condition)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Prevention(%q) = %v, want %v", tt.condition, got, tt.want)
			}
		})
	}
}

func TestFuzzyKey(t *testing.T) {
	tests := []struct {
		condition string
		want      string
	}{
		{condition: "Tomato Late Blight", want: "Tomato Late"},
		{condition: "Tomato Yellow Leaf Curl Virus", want: "Tomato Yellow"},
		{condition: "Rose", want: "Rose"},
		{condition: "", want: ""},
	}

	for _, tt := range tests {
		if got := fuzzyKey(tt.condition); got != tt.want {
			t.Errorf("fuzzyKey(%q) = %q, want %q", tt.condition, got, tt.want)
		}
	}
}
