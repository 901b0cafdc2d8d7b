package models

import "time"

// Food is a row of the foods table. Total calories are derived, never stored.
type Food struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	Name            string    `db:"name"`
	CaloriesPer100g *float64  `db:"calories_per_100g"`
	Weight          *float64  `db:"weight"`
	MealType        *string   `db:"meal_type"`
	Date            *string   `db:"date"`
	CreatedAt       time.Time `db:"created_at"`
}

// FoodInput is the create/update payload. The client has historically sent
// the per-100g value as "calories", so that key is accepted when
// caloriesPer100g is absent.
type FoodInput struct {
	Name            string   `json:"name"`
	CaloriesPer100g *float64 `json:"caloriesPer100g"`
	Calories        *float64 `json:"calories"`
	Weight          *float64 `json:"weight"`
	MealType        *string  `json:"mealType"`
	MealTypeSnake   *string  `json:"meal_type"`
	Date            *string  `json:"date"`
	Timestamp       *string  `json:"timestamp"`
}

// FoodResponse is the wire shape of a food entry.
type FoodResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	CaloriesPer100g *float64  `json:"caloriesPer100g"`
	Weight          *float64  `json:"weight"`
	Calories        float64   `json:"calories"`
	MealTypeRaw     *string   `json:"meal_type"`
	MealType        string    `json:"mealType,omitempty"`
	Date            string    `json:"date"`
	Timestamp       time.Time `json:"timestamp"`
}
