package services

import (
	"math"
	"strconv"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
)

const dateLayout = "2006-01-02"

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID turns a path id into a row id. Anything unparsable matches no row.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FoodCalories is caloriesPer100g × weight / 100 rounded to 2 decimals, 0 if either is unknown.
func FoodCalories(caloriesPer100g, weight *float64) float64 {
	if caloriesPer100g == nil || weight == nil {
		return 0
	}
	c, w := *caloriesPer100g, *weight
	if math.IsNaN(c) || math.IsNaN(w) {
		return 0
	}
	return round2(c * w / 100)
}

// entryDate returns the stored date, or the UTC date of the creation timestamp.
func entryDate(date *string, createdAt time.Time) string {
	if date != nil && *date != "" {
		return *date
	}
	if createdAt.IsZero() {
		return ""
	}
	return createdAt.UTC().Format(dateLayout)
}

func FormatFood(f models.Food) models.FoodResponse {
	resp := models.FoodResponse{
		ID:              formatID(f.ID),
		UserID:          formatID(f.UserID),
		Name:            f.Name,
		CaloriesPer100g: f.CaloriesPer100g,
		Weight:          f.Weight,
		Calories:        FoodCalories(f.CaloriesPer100g, f.Weight),
		MealTypeRaw:     f.MealType,
		Date:            entryDate(f.Date, f.CreatedAt),
		Timestamp:       f.CreatedAt,
	}
	if f.MealType != nil {
		resp.MealType = *f.MealType
	}
	return resp
}

func FormatExercise(e models.Exercise) models.ExerciseResponse {
	resp := models.ExerciseResponse{
		ID:              formatID(e.ID),
		UserID:          formatID(e.UserID),
		Name:            e.Name,
		CaloriesPerHour: e.CaloriesPerHour,
		Duration:        e.Duration,
		Sets:            e.Sets,
		Completed:       e.Completed,
		Date:            entryDate(e.Date, e.CreatedAt),
		Timestamp:       e.CreatedAt,
	}
	if e.CaloriesBurned != nil {
		resp.CaloriesBurned = *e.CaloriesBurned
	}
	return resp
}

func FormatUser(u models.User) models.UserResponse {
	return models.UserResponse{
		ID:        formatID(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func formatFoods(rows []models.Food) []models.FoodResponse {
	out := make([]models.FoodResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FormatFood(row))
	}
	return out
}

func formatExercises(rows []models.Exercise) []models.ExerciseResponse {
	out := make([]models.ExerciseResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FormatExercise(row))
	}
	return out
}
