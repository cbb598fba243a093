package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
)

type WorkoutService struct {
	db        *sqlx.DB
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	stats     repository.UserStatRepository
}

func NewWorkoutService(
	db *sqlx.DB,
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	stats repository.UserStatRepository,
) *WorkoutService {
	return &WorkoutService{db: db, workouts: workouts, exercises: exercises, stats: stats}
}

// Workouts lists a user's workouts with their exercises attached.
func (s *WorkoutService) Workouts(userID string, filter repository.WorkoutFilter) ([]*model.Workout, error) {
	workouts, err := s.workouts.ForUser(userID, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(workouts))
	for i, workout := range workouts {
		ids[i] = workout.ID
	}

	byWorkout, err := s.exercises.ForWorkouts(ids)
	if err != nil {
		return nil, err
	}
	for _, workout := range workouts {
		workout.Exercises = byWorkout[workout.ID]
		if workout.Exercises == nil {
			workout.Exercises = []*model.Exercise{}
		}
	}

	return workouts, nil
}

// ByID loads a workout with its exercises, enforcing ownership.
func (s *WorkoutService) ByID(userID, workoutID string) (*model.Workout, error) {
	workout, err := s.workouts.ByID(workoutID)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrForbidden
	}

	exercises, err := s.exercises.ByWorkout(workout.ID)
	if err != nil {
		return nil, err
	}
	workout.Exercises = exercises
	if workout.Exercises == nil {
		workout.Exercises = []*model.Exercise{}
	}

	return workout, nil
}

type ExerciseInput struct {
	Name      string
	Sets      *int
	Reps      *int
	Weight    *string
	Completed bool
}

type WorkoutCreateInput struct {
	Name           string
	Date           string // validated YYYY-MM-DD
	Time           *string
	Duration       *int
	CaloriesBurned *float64
	Completed      bool
	Exercises      []ExerciseInput
}

// Create inserts the workout and any inline exercises in one transaction.
// A workout born completed counts toward the user's rolling stats right away.
func (s *WorkoutService) Create(userID string, in WorkoutCreateInput) (*model.Workout, error) {
	workout := &model.Workout{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           in.Name,
		Date:           in.Date,
		Time:           in.Time,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Completed:      in.Completed,
		Exercises:      []*model.Exercise{},
	}

	for _, e := range in.Exercises {
		workout.Exercises = append(workout.Exercises, &model.Exercise{
			ID:        uuid.New().String(),
			WorkoutID: workout.ID,
			Name:      e.Name,
			Sets:      e.Sets,
			Reps:      e.Reps,
			Weight:    e.Weight,
			Completed: e.Completed,
		})
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.workouts.Create(tx, workout)
	if err != nil {
		return nil, err
	}
	for _, exercise := range workout.Exercises {
		err = s.exercises.Create(tx, exercise)
		if err != nil {
			return nil, err
		}
	}

	if workout.Completed {
		err = s.stats.ApplyWorkoutDelta(tx, userID, 1, intValue(workout.Duration), floatValue(workout.CaloriesBurned), time.Now().UTC())
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return workout, nil
}

type WorkoutUpdateInput struct {
	Name           *string
	Date           *string // validated YYYY-MM-DD
	Time           *string
	Duration       *int
	CaloriesBurned *float64
	Completed      *bool
}

// Update rewrites the workout and keeps the user's rolling stats in step with
// completion transitions: turning completed on adds the workout's duration and
// calories, turning it off subtracts them, and editing an already-completed
// workout swaps the old contribution for the new one.
func (s *WorkoutService) Update(userID, workoutID string, in WorkoutUpdateInput) (*model.Workout, error) {
	workout, err := s.workouts.ByID(workoutID)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrForbidden
	}

	wasCompleted := workout.Completed
	oldDuration := intValue(workout.Duration)
	oldCalories := floatValue(workout.CaloriesBurned)

	if in.Name != nil {
		workout.Name = *in.Name
	}
	if in.Date != nil {
		workout.Date = *in.Date
	}
	if in.Time != nil {
		workout.Time = in.Time
	}
	if in.Duration != nil {
		workout.Duration = in.Duration
	}
	if in.CaloriesBurned != nil {
		workout.CaloriesBurned = in.CaloriesBurned
	}
	if in.Completed != nil {
		workout.Completed = *in.Completed
	}

	newDuration := intValue(workout.Duration)
	newCalories := floatValue(workout.CaloriesBurned)

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.workouts.Update(tx, workout)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case !wasCompleted && workout.Completed:
		err = s.stats.ApplyWorkoutDelta(tx, userID, 1, newDuration, newCalories, now)
	case wasCompleted && !workout.Completed:
		err = s.stats.ApplyWorkoutDelta(tx, userID, -1, -oldDuration, -oldCalories, now)
	case wasCompleted && workout.Completed && (oldDuration != newDuration || oldCalories != newCalories):
		err = s.stats.ApplyWorkoutDelta(tx, userID, 0, -oldDuration, -oldCalories, now)
		if err == nil {
			err = s.stats.ApplyWorkoutDelta(tx, userID, 0, newDuration, newCalories, now)
		}
	}
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return s.ByID(userID, workoutID)
}

// Delete removes the workout, subtracting a completed workout's contribution
// from the rolling stats in the same transaction.
func (s *WorkoutService) Delete(userID, workoutID string) error {
	workout, err := s.workouts.ByID(workoutID)
	if err != nil {
		return err
	}
	if workout.UserID != userID {
		return ErrForbidden
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.workouts.Delete(tx, workoutID)
	if err != nil {
		return err
	}

	if workout.Completed {
		err = s.stats.ApplyWorkoutDelta(tx, userID, -1, -intValue(workout.Duration), -floatValue(workout.CaloriesBurned), time.Now().UTC())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FromTemplate starts a not-yet-completed workout for today, named after the
// template with its estimated duration.
func (s *WorkoutService) FromTemplate(userID string, template *model.WorkoutTemplate, date string) (*model.Workout, error) {
	return s.Create(userID, WorkoutCreateInput{
		Name:     template.Name,
		Date:     date,
		Duration: template.EstimatedDuration,
	})
}

// AddExercise appends an exercise to a workout the user owns.
func (s *WorkoutService) AddExercise(userID, workoutID string, in ExerciseInput) (*model.Exercise, error) {
	workout, err := s.workouts.ByID(workoutID)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrForbidden
	}

	exercise := &model.Exercise{
		ID:        uuid.New().String(),
		WorkoutID: workout.ID,
		Name:      in.Name,
		Sets:      in.Sets,
		Reps:      in.Reps,
		Weight:    in.Weight,
		Completed: in.Completed,
	}

	err = s.exercises.Create(s.db, exercise)
	if err != nil {
		return nil, err
	}

	return exercise, nil
}

type ExerciseUpdateInput struct {
	Name      *string
	Sets      *int
	Reps      *int
	Weight    *string
	Completed *bool
}

func (s *WorkoutService) UpdateExercise(userID, exerciseID string, in ExerciseUpdateInput) (*model.Exercise, error) {
	exercise, err := s.exercises.ByID(exerciseID)
	if err != nil {
		return nil, err
	}
	workout, err := s.workouts.ByID(exercise.WorkoutID)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrForbidden
	}

	if in.Name != nil {
		exercise.Name = *in.Name
	}
	if in.Sets != nil {
		exercise.Sets = in.Sets
	}
	if in.Reps != nil {
		exercise.Reps = in.Reps
	}
	if in.Weight != nil {
		exercise.Weight = in.Weight
	}
	if in.Completed != nil {
		exercise.Completed = *in.Completed
	}

	err = s.exercises.Update(exercise)
	if err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *WorkoutService) DeleteExercise(userID, exerciseID string) error {
	exercise, err := s.exercises.ByID(exerciseID)
	if err != nil {
		return err
	}
	workout, err := s.workouts.ByID(exercise.WorkoutID)
	if err != nil {
		return err
	}
	if workout.UserID != userID {
		return ErrForbidden
	}

	return s.exercises.Delete(exerciseID)
}

// UserStats returns the user's rolling workout counters.
func (s *WorkoutService) UserStats(userID string) (*model.UserStat, error) {
	return s.stats.ByUserID(userID)
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func floatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
