package models

import "time"

// Exercise is a row of the exercises table. Unlike Food, calories burned is stored.
type Exercise struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	Name            string    `db:"name"`
	CaloriesPerHour *float64  `db:"calories_per_hour"`
	Duration        *float64  `db:"duration"`
	CaloriesBurned  *float64  `db:"calories_burned"`
	Sets            *int64    `db:"sets"`
	Completed       bool      `db:"completed"`
	Date            *string   `db:"date"`
	CreatedAt       time.Time `db:"created_at"`
}

type ExerciseInput struct {
	Name            string   `json:"name"`
	CaloriesPerHour *float64 `json:"caloriesPerHour"`
	Duration        *float64 `json:"duration"`
	CaloriesBurned  *float64 `json:"caloriesBurned"`
	Sets            *int64   `json:"sets"`
	Completed       *bool    `json:"completed"`
	Date            *string  `json:"date"`
	Timestamp       *string  `json:"timestamp"`
}

type ExerciseResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	CaloriesPerHour *float64  `json:"caloriesPerHour"`
	Duration        *float64  `json:"duration"`
	CaloriesBurned  float64   `json:"caloriesBurned"`
	Sets            *int64    `json:"sets"`
	Completed       bool      `json:"completed"`
	Date            string    `json:"date"`
	Timestamp       time.Time `json:"timestamp"`
}
