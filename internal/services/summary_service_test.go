package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummaryTotals(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")
	day := "2026-03-10"

	for _, in := range []models.FoodInput{
		{Name: "oats", CaloriesPer100g: ptr(389.0), Weight: ptr(50.0), MealType: ptr("breakfast"), Date: ptr(day)},
		{Name: "banana", CaloriesPer100g: ptr(89.0), Weight: ptr(120.0), MealType: ptr("breakfast"), Date: ptr(day)},
		{Name: "chips", CaloriesPer100g: ptr(536.0), Weight: ptr(30.0), Date: ptr(day)},
		{Name: "pizza", CaloriesPer100g: ptr(266.0), Weight: ptr(300.0), Date: ptr("2026-03-11")},
	} {
		_, err := env.foods.Create(ctx, alice, in)
		require.NoError(t, err)
	}
	for _, in := range []models.ExerciseInput{
		{Name: "run", CaloriesBurned: ptr(300.5), Date: ptr(day)},
		{Name: "yoga", CaloriesBurned: ptr(100.0), Completed: ptr(false), Date: ptr(day)},
	} {
		_, err := env.exercises.Create(ctx, alice, in)
		require.NoError(t, err)
	}

	s, err := env.summary.Daily(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, day, s.Date)
	assert.Equal(t, 3, s.FoodCount)
	assert.Equal(t, 2, s.ExerciseCount)
	assert.Equal(t, 1, s.CompletedExercises)
	assert.Equal(t, 462.1, s.CaloriesIn) // 194.5 + 106.8 + 160.8
	assert.Equal(t, 400.5, s.CaloriesOut)
	assert.Equal(t, 61.6, s.Net)
	assert.Equal(t, 301.3, s.ByMeal["breakfast"])
	assert.Equal(t, 160.8, s.ByMeal["other"])
}

func TestDailySummaryDefaultsToToday(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")

	now := time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)
	env.foods.now = fixedClock(now)
	env.summary.now = fixedClock(now)
	_, err := env.foods.Create(ctx, alice, models.FoodInput{Name: "apple", CaloriesPer100g: ptr(52.0), Weight: ptr(100.0)})
	require.NoError(t, err)

	s, err := env.summary.Daily(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04", s.Date)
	assert.Equal(t, 1, s.FoodCount)
	assert.Equal(t, 52.0, s.CaloriesIn)

	_, err = env.summary.Daily(ctx, alice, "July 4th")
	assert.True(t, IsKind(err, KindValidation))
}

func TestDailySummaryCacheInvalidation(t *testing.T) {
	cache, mr := newRedisCache(t, time.Minute)
	env := newTestEnv(t, cache)
	ctx := context.Background()
	alice := env.register(t, "alice")
	day := "2026-03-10"

	_, err := env.foods.Create(ctx, alice, models.FoodInput{Name: "apple", CaloriesPer100g: ptr(50.0), Weight: ptr(100.0), Date: ptr(day)})
	require.NoError(t, err)

	first, err := env.summary.Daily(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, 50.0, first.CaloriesIn)
	gen, err := cache.Generation(ctx, summaryKey(alice))
	require.NoError(t, err)
	assert.True(t, mr.Exists(CacheKeyPrefix+VersionedKey(summaryKey(alice), gen)))

	// A write behind the service's back is not seen until invalidation.
	_, err = env.db.Exec(`UPDATE foods SET weight = 200 WHERE user_id = ?`, alice)
	require.NoError(t, err)
	cached, err := env.summary.Daily(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cached.CaloriesIn)

	_, err = env.exercises.Create(ctx, alice, models.ExerciseInput{Name: "run", CaloriesBurned: ptr(30.0), Date: ptr(day)})
	require.NoError(t, err)
	next, err := cache.Generation(ctx, summaryKey(alice))
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	assert.False(t, mr.Exists(CacheKeyPrefix+VersionedKey(summaryKey(alice), gen)), "retired hash is dropped")

	fresh, err := env.summary.Daily(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fresh.CaloriesIn)
	assert.Equal(t, 30.0, fresh.CaloriesOut)
}

func TestDailySummaryWriteDuringFillIsNotMasked(t *testing.T) {
	cache, _ := newRedisCache(t, time.Minute)
	env := newTestEnv(t, cache)
	ctx := context.Background()
	alice := env.register(t, "alice")
	day := "2026-03-10"

	_, err := env.foods.Create(ctx, alice, models.FoodInput{Name: "apple", CaloriesPer100g: ptr(50.0), Weight: ptr(100.0), Date: ptr(day)})
	require.NoError(t, err)

	// A food lands after Daily has loaded the entries but before it caches them.
	env.summary.beforeFill = func() {
		env.summary.beforeFill = nil
		_, err := env.foods.Create(ctx, alice, models.FoodInput{Name: "pear", CaloriesPer100g: ptr(60.0), Weight: ptr(100.0), Date: ptr(day)})
		require.NoError(t, err)
	}
	stale, err := env.summary.Daily(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stale.CaloriesIn, "computed before the pear was stored")

	fresh, err := env.summary.Daily(ctx, alice, day)
	require.NoError(t, err)
	assert.Equal(t, 110.0, fresh.CaloriesIn)
	assert.Equal(t, 2, fresh.FoodCount)
}

func TestDailySummarySurvivesCacheOutage(t *testing.T) {
	cache, mr := newRedisCache(t, time.Minute)
	env := newTestEnv(t, cache)
	ctx := context.Background()
	alice := env.register(t, "alice")
	mr.Close()

	_, err := env.foods.Create(ctx, alice, models.FoodInput{Name: "apple", CaloriesPer100g: ptr(52.0), Weight: ptr(100.0), Date: ptr("2026-01-01")})
	require.NoError(t, err)

	s, err := env.summary.Daily(ctx, alice, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 52.0, s.CaloriesIn)
}

func TestAllReturnsBothCollections(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")

	data, err := env.summary.All(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, data.Foods)
	assert.NotNil(t, data.Exercises)
	assert.Empty(t, data.Foods)

	_, err = env.exercises.Create(ctx, alice, models.ExerciseInput{Name: "run"})
	require.NoError(t, err)
	data, err = env.summary.All(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, data.Exercises, 1)
}
