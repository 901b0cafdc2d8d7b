package models

// UserData is the combined payload of GET /api/data.
type UserData struct {
	Foods     []FoodResponse     `json:"foods"`
	Exercises []ExerciseResponse `json:"exercises"`
}

// DailySummary totals one user's entries for a single date.
type DailySummary struct {
	Date               string             `json:"date"`
	CaloriesIn         float64            `json:"caloriesIn"`
	CaloriesOut        float64            `json:"caloriesOut"`
	Net                float64            `json:"net"`
	FoodCount          int                `json:"foodCount"`
	ExerciseCount      int                `json:"exerciseCount"`
	CompletedExercises int                `json:"completedExercises"`
	ByMeal             map[string]float64 `json:"byMeal"`
}
