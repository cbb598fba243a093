package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/validation"
)

type HealthService struct {
	db      *sqlx.DB
	metrics repository.HealthMetricRepository
	users   repository.UserRepository
}

func NewHealthService(db *sqlx.DB, metrics repository.HealthMetricRepository, users repository.UserRepository) *HealthService {
	return &HealthService{db: db, metrics: metrics, users: users}
}

func (s *HealthService) Metrics(userID string, filter repository.MetricFilter) ([]*model.HealthMetric, error) {
	return s.metrics.ForUser(userID, filter)
}

func (s *HealthService) ByID(userID, metricID string) (*model.HealthMetric, error) {
	metric, err := s.metrics.ByID(metricID)
	if err != nil {
		return nil, err
	}
	if metric.UserID != userID {
		return nil, ErrForbidden
	}
	return metric, nil
}

func (s *HealthService) Latest(userID string) (*model.HealthMetric, error) {
	return s.metrics.Latest(userID)
}

type MetricCreateInput struct {
	Date             string // validated YYYY-MM-DD
	Weight           *float64
	Steps            *int
	CaloriesBurned   *float64
	WorkoutDuration  *int
	SleepDuration    *float64
	RestingHeartRate *int
}

// Create inserts a metric for a date the user has no entry for yet, then
// refreshes the user's weight mirror in the same transaction.
func (s *HealthService) Create(userID string, in MetricCreateInput) (*model.HealthMetric, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	metric := &model.HealthMetric{
		ID:               uuid.New().String(),
		UserID:           userID,
		Date:             in.Date,
		Weight:           in.Weight,
		Steps:            in.Steps,
		CaloriesBurned:   in.CaloriesBurned,
		WorkoutDuration:  in.WorkoutDuration,
		SleepDuration:    in.SleepDuration,
		RestingHeartRate: in.RestingHeartRate,
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.metrics.Create(tx, metric)
	if err != nil {
		return nil, err
	}

	if metric.Weight != nil {
		err = s.refreshWeightMirror(tx, user)
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return metric, nil
}

type MetricUpdateInput struct {
	Date             *string // validated YYYY-MM-DD
	Weight           *float64
	Steps            *int
	CaloriesBurned   *float64
	WorkoutDuration  *int
	SleepDuration    *float64
	RestingHeartRate *int
}

// Update rewrites a metric. Whenever the weight or the date changed, the
// freshest weighted entry may have changed too, so the mirror is refreshed.
func (s *HealthService) Update(userID, metricID string, in MetricUpdateInput) (*model.HealthMetric, error) {
	metric, err := s.metrics.ByID(metricID)
	if err != nil {
		return nil, err
	}
	if metric.UserID != userID {
		return nil, ErrForbidden
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	touchedWeight := false
	if in.Date != nil && *in.Date != metric.Date {
		metric.Date = *in.Date
		touchedWeight = metric.Weight != nil || in.Weight != nil
	}
	if in.Weight != nil {
		metric.Weight = in.Weight
		touchedWeight = true
	}
	if in.Steps != nil {
		metric.Steps = in.Steps
	}
	if in.CaloriesBurned != nil {
		metric.CaloriesBurned = in.CaloriesBurned
	}
	if in.WorkoutDuration != nil {
		metric.WorkoutDuration = in.WorkoutDuration
	}
	if in.SleepDuration != nil {
		metric.SleepDuration = in.SleepDuration
	}
	if in.RestingHeartRate != nil {
		metric.RestingHeartRate = in.RestingHeartRate
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.metrics.Update(tx, metric)
	if err != nil {
		return nil, err
	}

	if touchedWeight {
		err = s.refreshWeightMirror(tx, user)
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return metric, nil
}

// Delete removes a metric; if it carried a weight the mirror falls back to the
// next freshest weighted entry.
func (s *HealthService) Delete(userID, metricID string) error {
	metric, err := s.metrics.ByID(metricID)
	if err != nil {
		return err
	}
	if metric.UserID != userID {
		return ErrForbidden
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		return err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.metrics.Delete(tx, metric.ID)
	if err != nil {
		return err
	}

	if metric.Weight != nil {
		err = s.refreshWeightMirror(tx, user)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// refreshWeightMirror points the user's current_weight and BMI at the latest
// weighted metric. When no weighted metric remains the mirror is left as-is;
// the last known weight is still the best answer we have.
func (s *HealthService) refreshWeightMirror(ext sqlx.Ext, user *model.User) error {
	latest, err := s.metrics.LatestWithWeight(ext, user.ID)
	if errors.Is(err, repository.ErrMetricNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	user.CurrentWeight = latest.Weight
	user.RecalcBMI()

	return s.users.UpdateBodyMetrics(ext, user.ID, user.CurrentWeight, user.BMI)
}

// WeightSummary aggregates the weight readings in a stats window.
type WeightSummary struct {
	Current *float64 `json:"current"`
	Change  *float64 `json:"change"`
	Average *float64 `json:"avg"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Trend   string   `json:"trend"`
}

// StepsSummary aggregates the step counts in a stats window.
type StepsSummary struct {
	Average *float64 `json:"avg"`
	Max     *int     `json:"max"`
	Total   int      `json:"total"`
	Trend   string   `json:"trend"`
}

// SleepSummary aggregates the sleep hours in a stats window.
type SleepSummary struct {
	Average *float64 `json:"avg"`
	Trend   string   `json:"trend"`
}

type HealthStats struct {
	Period string        `json:"period"`
	Weight WeightSummary `json:"weight"`
	Steps  StepsSummary  `json:"steps"`
	Sleep  SleepSummary  `json:"sleep"`
}

// Stats summarizes the user's metrics over the trailing N days (today
// inclusive).
func (s *HealthService) Stats(userID string, days int) (*HealthStats, error) {
	if days <= 0 {
		days = 7
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(days - 1))

	metrics, err := s.metrics.InRange(userID, start.Format(validation.DateLayout), end.Format(validation.DateLayout))
	if err != nil {
		return nil, err
	}

	stats := &HealthStats{
		Period: fmt.Sprintf("%d_days", days),
		Weight: WeightSummary{Trend: "stable"},
		Steps:  StepsSummary{Trend: "stable"},
		Sleep:  SleepSummary{Trend: "stable"},
	}

	var weights []float64
	var steps []int
	var sleeps []float64
	for _, m := range metrics {
		if m.Weight != nil {
			weights = append(weights, *m.Weight)
		}
		if m.Steps != nil {
			steps = append(steps, *m.Steps)
		}
		if m.SleepDuration != nil {
			sleeps = append(sleeps, *m.SleepDuration)
		}
	}

	if len(weights) > 0 {
		current := weights[len(weights)-1]
		change := current - weights[0]
		sum, min, max := weights[0], weights[0], weights[0]
		for _, w := range weights[1:] {
			sum += w
			if w < min {
				min = w
			}
			if w > max {
				max = w
			}
		}
		avg := sum / float64(len(weights))
		stats.Weight = WeightSummary{
			Current: &current,
			Change:  &change,
			Average: &avg,
			Min:     &min,
			Max:     &max,
			Trend:   trendOf(change),
		}
	}

	if len(steps) > 0 {
		total := 0
		max := steps[0]
		for _, n := range steps {
			total += n
			if n > max {
				max = n
			}
		}
		avg := float64(total) / float64(len(steps))
		stats.Steps = StepsSummary{
			Average: &avg,
			Max:     &max,
			Total:   total,
			Trend:   trendOf(float64(steps[len(steps)-1] - steps[0])),
		}
	}

	if len(sleeps) > 0 {
		sum := 0.0
		for _, h := range sleeps {
			sum += h
		}
		avg := sum / float64(len(sleeps))
		stats.Sleep = SleepSummary{
			Average: &avg,
			Trend:   trendOf(sleeps[len(sleeps)-1] - sleeps[0]),
		}
	}

	return stats, nil
}

func trendOf(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "stable"
	}
}
