package store

import (
	"context"
	"time"
)

// Seed loads the curated reference data when the corresponding tables are
// empty. It is idempotent across restarts: a non-empty table is left alone.
func (s *Store) Seed(ctx context.Context, now time.Time) error {
	if err := s.seedTreatments(ctx); err != nil {
		return err
	}
	if err := s.seedAlerts(ctx, now); err != nil {
		return err
	}
	return s.seedMarket(ctx, now)
}

type treatmentSeed struct {
	disease, name, ingredient, method, dosage, frequency, timing string
	rating                                                       float64
	organic                                                      bool
}

var treatmentSeeds = []treatmentSeed{
	{"Tomato Late Blight", "Copper Fungicide Spray", "Copper oxychloride", "Foliar spray", "3g per liter", "Every 7 days", "Early morning", 4.5, true},
	{"Tomato Late Blight", "Mancozeb Treatment", "Mancozeb 75% WP", "Foliar spray", "2.5g per liter", "Every 10 days", "Before rain", 4.2, false},
	{"Tomato Late Blight", "Chlorothalonil Spray", "Chlorothalonil", "Foliar spray", "2ml per liter", "Every 7-10 days", "Evening", 4.0, false},
	{"Tomato Early Blight", "Neem Oil Spray", "Azadirachtin", "Foliar spray", "5ml per liter", "Every 5 days", "Evening", 3.8, true},
	{"Tomato Early Blight", "Azoxystrobin Spray", "Azoxystrobin 23% SC", "Foliar spray", "1ml per liter", "Every 14 days", "Morning", 4.3, false},
	{"Potato Late Blight", "Metalaxyl Drench", "Metalaxyl + Mancozeb", "Soil drench and spray", "2g per liter", "Every 10 days", "At first sign", 4.6, false},
	{"Potato Early Blight", "Bordeaux Mixture", "Copper sulfate + lime", "Foliar spray", "10g per liter", "Every 10 days", "Dry weather", 3.9, true},
	{"Apple Black Rot", "Captan Spray", "Captan 50% WP", "Foliar spray", "2g per liter", "Every 10-14 days", "Petal fall onwards", 4.1, false},
	{"Apple Scab", "Sulfur Dust", "Elemental sulfur", "Dusting", "25kg per hectare", "Every 7 days", "Pre-bloom", 3.7, true},
	{"Grape Black Rot", "Myclobutanil Spray", "Myclobutanil", "Foliar spray", "0.4ml per liter", "Every 14 days", "Bloom period", 4.4, false},
	{"Peach Bacterial Spot", "Copper Hydroxide", "Copper hydroxide", "Dormant spray", "4g per liter", "Every 14 days", "Dormant season", 3.6, true},
	{"Pepper Bacterial Spot", "Streptomycin Spray", "Streptomycin sulfate", "Foliar spray", "0.5g per liter", "Every 7 days", "Seedling stage", 3.5, false},
	{"Tomato Bacterial Spot", "Copper Soap Spray", "Copper octanoate", "Foliar spray", "15ml per liter", "Every 7 days", "Morning", 3.4, true},
	{"Cherry Powdery Mildew", "Potassium Bicarbonate", "Potassium bicarbonate", "Foliar spray", "5g per liter", "Every 7 days", "At first sign", 3.8, true},
	{"Squash Powdery Mildew", "Milk Spray", "Diluted cow milk", "Foliar spray", "1:9 milk to water", "Twice weekly", "Sunny morning", 3.2, true},
	{"Corn Common Rust", "Propiconazole Spray", "Propiconazole 25% EC", "Foliar spray", "1ml per liter", "Every 14 days", "Tasseling stage", 4.0, false},
	{"Tomato Mosaic Virus", "Infected Plant Removal", "None (cultural control)", "Rogue and destroy", "N/A", "On detection", "Immediately", 3.0, true},
	{"Tomato Yellow Leaf Curl Virus", "Whitefly Control", "Imidacloprid", "Soil drench", "0.5ml per liter", "Every 21 days", "Transplanting", 3.9, false},
	{"Tomato Spider Mites", "Miticide Spray", "Abamectin", "Foliar spray", "0.5ml per liter", "Every 7 days", "Under leaves", 4.1, false},
	{"Tomato Leaf Mold", "Ventilation and Copper", "Copper oxychloride", "Foliar spray", "3g per liter", "Every 10 days", "After pruning", 3.7, true},
	{"Strawberry Leaf Scorch", "Captan Spray", "Captan 50% WP", "Foliar spray", "2g per liter", "Every 10 days", "After harvest", 3.6, false},
	{"Citrus Greening Disease", "Psyllid Vector Control", "Imidacloprid", "Trunk application", "Per label", "Every 3 months", "New flush", 3.3, false},
}

func (s *Store) seedTreatments(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM disease_treatments`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range treatmentSeeds {
		organic := 0
		if t.organic {
			organic = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO disease_treatments
			   (disease_name, treatment_name, active_ingredient, application_method,
			    dosage, frequency, timing, effectiveness_rating, organic)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.disease, t.name, t.ingredient, t.method, t.dosage, t.frequency,
			t.timing, t.rating, organic); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type alertSeed struct {
	region, disease, level, description, prevention string
	ttl                                             time.Duration
}

var alertSeeds = []alertSeed{
	{"Maharashtra", "Tomato Late Blight", "high", "Late blight outbreak reported after unseasonal rains", "Spray preventively before rain; remove volunteer plants", 45 * 24 * time.Hour},
	{"Punjab", "Potato Late Blight", "high", "Favorable conditions for late blight in the coming fortnight", "Monitor fields daily; keep foliage dry", 30 * 24 * time.Hour},
	{"Karnataka", "Tomato Yellow Leaf Curl Virus", "medium", "Whitefly populations rising in open-field tomato", "Use yellow sticky traps; protect nurseries with netting", 60 * 24 * time.Hour},
	{"Tamil Nadu", "Citrus Greening Disease", "high", "Citrus greening spreading through psyllid vectors", "Remove infected trees; control psyllids on new flush", 90 * 24 * time.Hour},
	{"Himachal Pradesh", "Apple Scab", "medium", "Extended leaf wetness favoring apple scab infection", "Apply protectant fungicide before forecast rain", 40 * 24 * time.Hour},
	{"Andhra Pradesh", "Pepper Bacterial Spot", "low", "Scattered bacterial spot incidence in chilli nurseries", "Use disease-free seed; avoid overhead irrigation", 35 * 24 * time.Hour},
}

func (s *Store) seedAlerts(ctx context.Context, now time.Time) error {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM regional_disease_alerts`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range alertSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO regional_disease_alerts
			   (region, disease_name, alert_level, description, prevention_measures, expires_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			a.region, a.disease, a.level, a.description, a.prevention,
			now.Add(a.ttl).UTC()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type priceSeed struct {
	crop   string
	price  float64
	unit   string
	change float64
	trend  string
	market string
}

var priceSeeds = []priceSeed{
	{"Rice", 45, "₹/kg", 2.5, "up", "Mandi"},
	{"Wheat", 28, "₹/kg", -1.2, "down", "Wholesale"},
	{"Cotton", 120, "₹/kg", 0.5, "stable", "Cotton Market"},
	{"Sugarcane", 3.2, "₹/kg", 1.8, "up", "Sugar Mill"},
	{"Maize", 22, "₹/kg", -0.8, "down", "Local Market"},
	{"Tomato", 15, "₹/kg", 3.2, "up", "Vegetable Market"},
}

type trendSeed struct {
	crop, prediction string
	confidence       int
}

var trendSeeds = []trendSeed{
	{"Rice", "Prices expected to rise due to increased demand", 85},
	{"Wheat", "Seasonal decline, consider holding stock", 78},
	{"Cotton", "Stable market, good time to sell", 92},
}

func (s *Store) seedMarket(ctx context.Context, now time.Time) error {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM market_prices`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range priceSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO market_prices (crop, price, unit, change, trend, market, last_updated)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.crop, p.price, p.unit, p.change, p.trend, p.market, now.UTC()); err != nil {
			return err
		}
	}
	for _, t := range trendSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO market_trends (crop, prediction, confidence)
			 VALUES (?, ?, ?)`,
			t.crop, t.prediction, t.confidence); err != nil {
			return err
		}
	}
	return tx.Commit()
}
