package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/database"
	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db        *sqlx.DB
	tokens    *TokenService
	cache     *CacheService
	users     *UserService
	foods     *FoodService
	exercises *ExerciseService
	summary   *SummaryService
}

func newTestEnv(t *testing.T, cache *CacheService) *testEnv {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "calsum.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if cache == nil {
		cache = NewCacheService(nil, 0)
	}
	tokens := NewTokenService("test-secret")
	foods := NewFoodService(db, cache)
	exercises := NewExerciseService(db, cache)
	return &testEnv{
		db:        db,
		tokens:    tokens,
		cache:     cache,
		users:     NewUserService(db, tokens, cache, AdminAccount{Username: "admin"}),
		foods:     foods,
		exercises: exercises,
		summary:   NewSummaryService(foods, exercises, cache),
	}
}

func (e *testEnv) register(t *testing.T, username string) int64 {
	t.Helper()
	resp, err := e.users.Register(context.Background(), models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	id, ok := parseID(resp.ID)
	require.True(t, ok)
	return id
}

func ptr[T any](v T) *T { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
