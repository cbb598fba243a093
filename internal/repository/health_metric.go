package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var (
	ErrMetricNotFound     = errors.New("health metric not found")
	ErrMetricDateConflict = errors.New("health metric already exists for this date")
)

// MetricFilter narrows metric listings. Empty fields are ignored.
type MetricFilter struct {
	StartDate string
	EndDate   string
}

type HealthMetricRepository interface {
	Create(ext sqlx.Ext, metric *model.HealthMetric) error
	ByID(id string) (*model.HealthMetric, error)
	ForUser(userID string, filter MetricFilter) ([]*model.HealthMetric, error)
	ByUserAndDate(userID, date string) (*model.HealthMetric, error)
	Latest(userID string) (*model.HealthMetric, error)
	LatestWithWeight(ext sqlx.Ext, userID string) (*model.HealthMetric, error)
	InRange(userID, startDate, endDate string) ([]*model.HealthMetric, error)
	Update(ext sqlx.Ext, metric *model.HealthMetric) error
	Delete(ext sqlx.Ext, id string) error
}

type healthMetricRepository struct {
	db *sqlx.DB
}

func NewHealthMetricRepository(db *sqlx.DB) HealthMetricRepository {
	return &healthMetricRepository{db: db}
}

func (r *healthMetricRepository) Create(ext sqlx.Ext, metric *model.HealthMetric) error {
	query := `INSERT INTO health_metrics (id, user_id, date, weight, steps, calories_burned, workout_duration, sleep_duration, resting_heart_rate)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := ext.Exec(query,
		metric.ID,
		metric.UserID,
		metric.Date,
		metric.Weight,
		metric.Steps,
		metric.CaloriesBurned,
		metric.WorkoutDuration,
		metric.SleepDuration,
		metric.RestingHeartRate,
	)
	if isUniqueViolation(err) {
		return ErrMetricDateConflict
	}

	return err
}

func (r *healthMetricRepository) ByID(id string) (*model.HealthMetric, error) {
	metric := &model.HealthMetric{}
	query := `SELECT * FROM health_metrics WHERE id = $1`

	err := r.db.Get(metric, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMetricNotFound
	}

	return metric, err
}

func (r *healthMetricRepository) ForUser(userID string, filter MetricFilter) ([]*model.HealthMetric, error) {
	query := `SELECT * FROM health_metrics WHERE user_id = $1`
	args := []any{userID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += ` AND date >= $` + itoa(len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += ` AND date <= $` + itoa(len(args))
	}

	query += ` ORDER BY date DESC`

	var metrics []*model.HealthMetric
	err := r.db.Select(&metrics, query, args...)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

func (r *healthMetricRepository) ByUserAndDate(userID, date string) (*model.HealthMetric, error) {
	metric := &model.HealthMetric{}
	query := `SELECT * FROM health_metrics WHERE user_id = $1 AND date = $2`

	err := r.db.Get(metric, query, userID, date)
	if err == sql.ErrNoRows {
		return nil, ErrMetricNotFound
	}

	return metric, err
}

func (r *healthMetricRepository) Latest(userID string) (*model.HealthMetric, error) {
	metric := &model.HealthMetric{}
	query := `SELECT * FROM health_metrics WHERE user_id = $1 ORDER BY date DESC LIMIT 1`

	err := r.db.Get(metric, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrMetricNotFound
	}

	return metric, err
}

// LatestWithWeight returns the most-recent-by-date metric that carries a
// weight; it feeds the user's current_weight/BMI mirror. It takes an ext so
// the mirror refresh sees writes made earlier in the same transaction.
func (r *healthMetricRepository) LatestWithWeight(ext sqlx.Ext, userID string) (*model.HealthMetric, error) {
	metric := &model.HealthMetric{}
	query := `SELECT * FROM health_metrics WHERE user_id = $1 AND weight IS NOT NULL ORDER BY date DESC LIMIT 1`

	err := sqlx.Get(ext, metric, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrMetricNotFound
	}

	return metric, err
}

func (r *healthMetricRepository) InRange(userID, startDate, endDate string) ([]*model.HealthMetric, error) {
	var metrics []*model.HealthMetric
	query := `SELECT * FROM health_metrics WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`

	err := r.db.Select(&metrics, query, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

func (r *healthMetricRepository) Update(ext sqlx.Ext, metric *model.HealthMetric) error {
	query := `UPDATE health_metrics
	          SET date = $1, weight = $2, steps = $3, calories_burned = $4, workout_duration = $5, sleep_duration = $6, resting_heart_rate = $7
	          WHERE id = $8`

	result, err := ext.Exec(query,
		metric.Date,
		metric.Weight,
		metric.Steps,
		metric.CaloriesBurned,
		metric.WorkoutDuration,
		metric.SleepDuration,
		metric.RestingHeartRate,
		metric.ID,
	)
	if isUniqueViolation(err) {
		return ErrMetricDateConflict
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMetricNotFound
	}

	return nil
}

func (r *healthMetricRepository) Delete(ext sqlx.Ext, id string) error {
	query := `DELETE FROM health_metrics WHERE id = $1`

	result, err := ext.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMetricNotFound
	}

	return nil
}
