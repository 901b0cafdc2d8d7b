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

const foodColumns = `id, user_id, name, calories_per_100g, weight, meal_type, date, created_at`

// FoodService is the owner-scoped repository for food entries.
type FoodService struct {
	db    *sqlx.DB
	cache *CacheService
	now   func() time.Time
}

func NewFoodService(db *sqlx.DB, cache *CacheService) *FoodService {
	return &FoodService{db: db, cache: cache, now: time.Now}
}

type foodFields struct {
	name            string
	caloriesPer100g *float64
	weight          *float64
	mealType        *string
	date            *string
}

func validateFood(in models.FoodInput) (foodFields, error) {
	f := foodFields{
		name:            strings.TrimSpace(in.Name),
		caloriesPer100g: in.CaloriesPer100g,
		weight:          in.Weight,
		mealType:        trimmedPtr(in.MealType),
	}
	if f.name == "" {
		return f, validationError("name is required")
	}
	if f.caloriesPer100g == nil {
		f.caloriesPer100g = in.Calories
	}
	if f.mealType == nil {
		f.mealType = trimmedPtr(in.MealTypeSnake)
	}
	if err := checkNonNegative("calories", f.caloriesPer100g); err != nil {
		return f, err
	}
	if err := checkNonNegative("weight", f.weight); err != nil {
		return f, err
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return f, err
	}
	f.date = date
	return f, nil
}

// List returns the owner's foods, newest first.
func (s *FoodService) List(ctx context.Context, owner int64) ([]models.FoodResponse, error) {
	var rows []models.Food
	query := s.db.Rebind(`SELECT ` + foodColumns + ` FROM foods WHERE user_id = ? ORDER BY created_at DESC, id DESC`)
	if err := s.db.SelectContext(ctx, &rows, query, owner); err != nil {
		return nil, storeError(err)
	}
	return formatFoods(rows), nil
}

// Create inserts a food owned by owner, whatever the payload says.
func (s *FoodService) Create(ctx context.Context, owner int64, in models.FoodInput) (models.FoodResponse, error) {
	f, err := validateFood(in)
	if err != nil {
		return models.FoodResponse{}, err
	}
	createdAt, err := creationTime(in.Timestamp, s.now())
	if err != nil {
		return models.FoodResponse{}, err
	}

	var id int64
	query := s.db.Rebind(`INSERT INTO foods (user_id, name, calories_per_100g, weight, meal_type, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, query, owner, f.name, nullable(f.caloriesPer100g), nullable(f.weight), nullable(f.mealType), nullable(f.date), createdAt).Scan(&id); err != nil {
		return models.FoodResponse{}, storeWriteError(err)
	}
	invalidateSummaries(ctx, s.cache, owner)

	row, err := s.get(ctx, id)
	if err != nil {
		return models.FoodResponse{}, err
	}
	return FormatFood(row), nil
}

// Update replaces the mutable fields of a food the owner holds.
func (s *FoodService) Update(ctx context.Context, owner int64, rawID string, in models.FoodInput) (models.FoodResponse, error) {
	existing, err := s.loadOwned(ctx, owner, rawID)
	if err != nil {
		return models.FoodResponse{}, err
	}
	f, err := validateFood(in)
	if err != nil {
		return models.FoodResponse{}, err
	}

	query := s.db.Rebind(`UPDATE foods SET name = ?, calories_per_100g = ?, weight = ?, meal_type = ?, date = ?
		WHERE id = ? AND user_id = ?`)
	res, err := s.db.ExecContext(ctx, query, f.name, nullable(f.caloriesPer100g), nullable(f.weight), nullable(f.mealType), nullable(f.date), existing.ID, owner)
	if err != nil {
		return models.FoodResponse{}, storeError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.FoodResponse{}, notFound("Food not found")
	}
	invalidateSummaries(ctx, s.cache, owner)

	row, err := s.get(ctx, existing.ID)
	if err != nil {
		return models.FoodResponse{}, err
	}
	return FormatFood(row), nil
}

// Delete removes a food the owner holds.
func (s *FoodService) Delete(ctx context.Context, owner int64, rawID string) error {
	existing, err := s.loadOwned(ctx, owner, rawID)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM foods WHERE id = ? AND user_id = ?`), existing.ID, owner)
	if err != nil {
		return storeError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("Food not found")
	}
	invalidateSummaries(ctx, s.cache, owner)
	return nil
}

// loadOwned fetches the row and checks it belongs to owner.
func (s *FoodService) loadOwned(ctx context.Context, owner int64, rawID string) (models.Food, error) {
	id, ok := parseID(rawID)
	if !ok {
		return models.Food{}, notFound("Food not found")
	}
	row, err := s.get(ctx, id)
	if err != nil {
		return models.Food{}, err
	}
	if row.UserID != owner {
		return models.Food{}, forbidden("Access denied. Food does not belong to user.")
	}
	return row, nil
}

func (s *FoodService) get(ctx context.Context, id int64) (models.Food, error) {
	var row models.Food
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+foodColumns+` FROM foods WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Food{}, notFound("Food not found")
	}
	if err != nil {
		return models.Food{}, storeError(err)
	}
	return row, nil
}
