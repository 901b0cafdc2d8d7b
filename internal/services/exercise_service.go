package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/jmoiron/sqlx"
)

const exerciseColumns = `id, user_id, name, calories_per_hour, duration, calories_burned, sets, completed, date, created_at`

// ExerciseService is the owner-scoped repository for exercise entries.
type ExerciseService struct {
	db    *sqlx.DB
	cache *CacheService
	now   func() time.Time
}

func NewExerciseService(db *sqlx.DB, cache *CacheService) *ExerciseService {
	return &ExerciseService{db: db, cache: cache, now: time.Now}
}

type exerciseFields struct {
	name            string
	caloriesPerHour *float64
	duration        *float64
	caloriesBurned  *float64
	sets            *int64
	completed       bool
	date            *string
}

func validateExercise(in models.ExerciseInput) (exerciseFields, error) {
	e := exerciseFields{
		name:            strings.TrimSpace(in.Name),
		caloriesPerHour: in.CaloriesPerHour,
		duration:        in.Duration,
		caloriesBurned:  in.CaloriesBurned,
		sets:            in.Sets,
		completed:       true,
	}
	if e.name == "" {
		return e, validationError("name is required")
	}
	if in.Completed != nil {
		e.completed = *in.Completed
	}
	for _, check := range []struct {
		field string
		v     *float64
	}{
		{"caloriesPerHour", e.caloriesPerHour},
		{"duration", e.duration},
		{"caloriesBurned", e.caloriesBurned},
	} {
		if err := checkNonNegative(check.field, check.v); err != nil {
			return e, err
		}
	}
	if e.sets != nil && *e.sets < 0 {
		return e, validationError("sets must be a non-negative number")
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return e, err
	}
	e.date = date
	return e, nil
}

// List returns the owner's exercises, newest first.
func (s *ExerciseService) List(ctx context.Context, owner int64) ([]models.ExerciseResponse, error) {
	var rows []models.Exercise
	query := s.db.Rebind(`SELECT ` + exerciseColumns + ` FROM exercises WHERE user_id = ? ORDER BY created_at DESC, id DESC`)
	if err := s.db.SelectContext(ctx, &rows, query, owner); err != nil {
		return nil, storeError(err)
	}
	return formatExercises(rows), nil
}

// Create inserts an exercise owned by owner.
func (s *ExerciseService) Create(ctx context.Context, owner int64, in models.ExerciseInput) (models.ExerciseResponse, error) {
	e, err := validateExercise(in)
	if err != nil {
		return models.ExerciseResponse{}, err
	}
	createdAt, err := creationTime(in.Timestamp, s.now())
	if err != nil {
		return models.ExerciseResponse{}, err
	}

	var id int64
	query := s.db.Rebind(`INSERT INTO exercises (user_id, name, calories_per_hour, duration, calories_burned, sets, completed, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err = s.db.QueryRowxContext(ctx, query, owner, e.name, nullable(e.caloriesPerHour), nullable(e.duration), nullable(e.caloriesBurned), nullable(e.sets), e.completed, nullable(e.date), createdAt).Scan(&id)
	if err != nil {
		return models.ExerciseResponse{}, storeWriteError(err)
	}
	invalidateSummaries(ctx, s.cache, owner)

	row, err := s.get(ctx, id)
	if err != nil {
		return models.ExerciseResponse{}, err
	}
	return FormatExercise(row), nil
}

// Update replaces the mutable fields of an exercise the owner holds.
func (s *ExerciseService) Update(ctx context.Context, owner int64, rawID string, in models.ExerciseInput) (models.ExerciseResponse, error) {
	existing, err := s.loadOwned(ctx, owner, rawID)
	if err != nil {
		return models.ExerciseResponse{}, err
	}
	e, err := validateExercise(in)
	if err != nil {
		return models.ExerciseResponse{}, err
	}

	query := s.db.Rebind(`UPDATE exercises SET name = ?, calories_per_hour = ?, duration = ?, calories_burned = ?, sets = ?, completed = ?, date = ?
		WHERE id = ? AND user_id = ?`)
	res, err := s.db.ExecContext(ctx, query, e.name, nullable(e.caloriesPerHour), nullable(e.duration), nullable(e.caloriesBurned), nullable(e.sets), e.completed, nullable(e.date), existing.ID, owner)
	if err != nil {
		return models.ExerciseResponse{}, storeError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ExerciseResponse{}, notFound("Exercise not found")
	}
	invalidateSummaries(ctx, s.cache, owner)

	row, err := s.get(ctx, existing.ID)
	if err != nil {
		return models.ExerciseResponse{}, err
	}
	return FormatExercise(row), nil
}

// Delete removes an exercise the owner holds.
func (s *ExerciseService) Delete(ctx context.Context, owner int64, rawID string) error {
	existing, err := s.loadOwned(ctx, owner, rawID)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM exercises WHERE id = ? AND user_id = ?`), existing.ID, owner)
	if err != nil {
		return storeError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("Exercise not found")
	}
	invalidateSummaries(ctx, s.cache, owner)
	return nil
}

func (s *ExerciseService) loadOwned(ctx context.Context, owner int64, rawID string) (models.Exercise, error) {
	id, ok := parseID(rawID)
	if !ok {
		return models.Exercise{}, notFound("Exercise not found")
	}
	row, err := s.get(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	if row.UserID != owner {
		return models.Exercise{}, forbidden("Access denied. Exercise does not belong to user.")
	}
	return row, nil
}

func (s *ExerciseService) get(ctx context.Context, id int64) (models.Exercise, error) {
	var row models.Exercise
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exercise{}, notFound("Exercise not found")
	}
	if err != nil {
		return models.Exercise{}, storeError(err)
	}
	return row, nil
}
