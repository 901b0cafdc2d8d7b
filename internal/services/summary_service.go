package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/rs/zerolog/log"
)

const summaryResource = "summary"

func summaryKey(owner int64) string {
	return CacheKey(summaryResource, formatID(owner))
}

// invalidateSummaries retires every cached daily summary of owner by bumping
// its generation, then drops the retired hash. A fill still in flight writes
// under the old generation, where nothing reads it.
func invalidateSummaries(ctx context.Context, cache *CacheService, owner int64) {
	key := summaryKey(owner)
	gen, err := cache.Generation(ctx, key)
	if err == nil {
		err = cache.Bump(ctx, key)
	}
	if err == nil {
		err = cache.Delete(ctx, VersionedKey(key, gen))
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("user_id", owner).Msg("summary cache invalidation failed")
	}
}

// SummaryService totals a user's foods and exercises for one day.
type SummaryService struct {
	foods     *FoodService
	exercises *ExerciseService
	cache     *CacheService
	now       func() time.Time

	// beforeFill runs between loading the entries and caching the result.
	beforeFill func()
}

func NewSummaryService(foods *FoodService, exercises *ExerciseService, cache *CacheService) *SummaryService {
	return &SummaryService{foods: foods, exercises: exercises, cache: cache, now: time.Now}
}

// All returns every food and exercise of owner, newest first.
func (s *SummaryService) All(ctx context.Context, owner int64) (models.UserData, error) {
	foods, err := s.foods.List(ctx, owner)
	if err != nil {
		return models.UserData{}, err
	}
	exercises, err := s.exercises.List(ctx, owner)
	if err != nil {
		return models.UserData{}, err
	}
	return models.UserData{Foods: foods, Exercises: exercises}, nil
}

// Daily aggregates entries whose date equals date. An empty date means today (UTC).
func (s *SummaryService) Daily(ctx context.Context, owner int64, date string) (models.DailySummary, error) {
	if date == "" {
		date = s.now().UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return models.DailySummary{}, validationError("date must be formatted as YYYY-MM-DD")
	}

	// The generation is read before the entries so that a write committed
	// after this point leaves our result under a retired key.
	useCache := s.cache.Enabled()
	gen, err := s.cache.Generation(ctx, summaryKey(owner))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("summary cache generation read failed")
		useCache = false
	}
	key := VersionedKey(summaryKey(owner), gen)

	if useCache {
		var cached models.DailySummary
		hit, err := s.cache.GetField(ctx, key, date, &cached)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("summary cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	data, err := s.All(ctx, owner)
	if err != nil {
		return models.DailySummary{}, err
	}
	summary := summarize(date, data)
	if s.beforeFill != nil {
		s.beforeFill()
	}

	if useCache {
		if err := s.cache.SetField(ctx, key, date, summary); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("summary cache write failed")
		}
	}
	return summary, nil
}

func summarize(date string, data models.UserData) models.DailySummary {
	summary := models.DailySummary{Date: date, ByMeal: map[string]float64{}}
	for _, f := range data.Foods {
		if f.Date != date {
			continue
		}
		meal := f.MealType
		if meal == "" {
			meal = "other"
		}
		summary.FoodCount++
		summary.CaloriesIn += f.Calories
		summary.ByMeal[meal] = round2(summary.ByMeal[meal] + f.Calories)
	}
	for _, e := range data.Exercises {
		if e.Date != date {
			continue
		}
		summary.ExerciseCount++
		if e.Completed {
			summary.CompletedExercises++
		}
		summary.CaloriesOut += e.CaloriesBurned
	}
	summary.CaloriesIn = round2(summary.CaloriesIn)
	summary.CaloriesOut = round2(summary.CaloriesOut)
	summary.Net = round2(summary.CaloriesIn - summary.CaloriesOut)
	return summary
}
