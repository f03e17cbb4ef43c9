// ABOUTME: Dashboard view assembled from stored readings and reports.
// ABOUTME: Supplies the latest value per vital plus BMI and heart-rate trends.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
)

// DefaultTrendLimit is the number of points kept per trend series.
const DefaultTrendLimit = 10

// TrendPoint is one numeric observation in a trend series.
type TrendPoint struct {
	Value      float64   `json:"value" yaml:"value"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// Dashboard is the data behind the dashboard view.
type Dashboard struct {
	Latest         vitals.LatestVitals                   `json:"latest" yaml:"latest"`
	Readings       map[vitals.Kind]*models.Reading       `json:"readings" yaml:"readings"`
	Status         map[vitals.Kind]vitals.Classification `json:"status" yaml:"status"`
	BMITrend       []TrendPoint                          `json:"bmi_trend" yaml:"bmi_trend"`
	HeartRateTrend []TrendPoint                          `json:"heart_rate_trend" yaml:"heart_rate_trend"`
	LatestReport   *models.Report                        `json:"latest_report,omitempty" yaml:"latest_report,omitempty"`
}

// BuildDashboard collects the latest reading of every kind and the
// numeric trends. Kinds with no readings classify as N/A.
func BuildDashboard(repo Repository, trendLimit int) (*Dashboard, error) {
	if trendLimit <= 0 {
		trendLimit = DefaultTrendLimit
	}

	d := &Dashboard{
		Readings: make(map[vitals.Kind]*models.Reading),
	}

	for _, kind := range vitals.AllKinds {
		r, err := repo.GetLatestReading(kind)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("latest %s: %w", kind, err)
		}
		d.Readings[kind] = r
		d.Latest.Set(kind, r.Value)
	}
	d.Status = d.Latest.Classify()

	var err error
	if d.BMITrend, err = trend(repo, vitals.KindBMI, trendLimit); err != nil {
		return nil, err
	}
	if d.HeartRateTrend, err = trend(repo, vitals.KindHeartRate, trendLimit); err != nil {
		return nil, err
	}

	reports, err := repo.ListReports(1)
	if err != nil {
		return nil, fmt.Errorf("latest report: %w", err)
	}
	if len(reports) > 0 {
		d.LatestReport = reports[0]
	}

	return d, nil
}

// trend returns up to limit numeric points for kind, oldest first.
func trend(repo Repository, kind vitals.Kind, limit int) ([]TrendPoint, error) {
	readings, err := repo.ListReadings(&kind, limit)
	if err != nil {
		return nil, fmt.Errorf("%s trend: %w", kind, err)
	}

	points := make([]TrendPoint, 0, len(readings))
	for i := len(readings) - 1; i >= 0; i-- {
		v := readings[i].Number()
		if v == nil {
			continue
		}
		points = append(points, TrendPoint{Value: *v, RecordedAt: readings[i].RecordedAt})
	}
	return points, nil
}
