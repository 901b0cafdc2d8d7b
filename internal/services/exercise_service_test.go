package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseDefaults(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.register(t, "alice")

	ex, err := env.exercises.Create(context.Background(), alice, models.ExerciseInput{Name: "walk"})
	require.NoError(t, err)
	assert.True(t, ex.Completed)
	assert.Equal(t, 0.0, ex.CaloriesBurned)
	assert.Nil(t, ex.Sets)
	assert.Equal(t, formatID(alice), ex.UserID)
	assert.NotEmpty(t, ex.Date)
}

func TestExerciseStoresCaloriesBurned(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")

	ex, err := env.exercises.Create(ctx, alice, models.ExerciseInput{
		Name:            "run",
		CaloriesPerHour: ptr(600.0),
		Duration:        ptr(30.0),
		CaloriesBurned:  ptr(250.0), // stored as sent, not derived
		Sets:            ptr(int64(3)),
		Completed:       ptr(false),
		Date:            ptr("2026-06-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, ex.CaloriesBurned)
	assert.Equal(t, int64(3), *ex.Sets)
	assert.False(t, ex.Completed)
	assert.Equal(t, "2026-06-01", ex.Date)

	updated, err := env.exercises.Update(ctx, alice, ex.ID, models.ExerciseInput{Name: "run", CaloriesBurned: ptr(300.0)})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.CaloriesBurned)
	assert.True(t, updated.Completed, "completed defaults to true on update too")
	assert.Nil(t, updated.Sets)
}

func TestExerciseValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")

	for name, in := range map[string]models.ExerciseInput{
		"missing name":     {},
		"negative hourly":  {Name: "run", CaloriesPerHour: ptr(-1.0)},
		"negative burned":  {Name: "run", CaloriesBurned: ptr(-1.0)},
		"negative minutes": {Name: "run", Duration: ptr(-10.0)},
		"negative sets":    {Name: "run", Sets: ptr(int64(-2))},
	} {
		_, err := env.exercises.Create(ctx, alice, in)
		assert.True(t, IsKind(err, KindValidation), "%s: %v", name, err)
	}
}

func TestExerciseOwnershipIsEnforced(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	ex, err := env.exercises.Create(ctx, alice, models.ExerciseInput{Name: "swim", CaloriesBurned: ptr(400.0)})
	require.NoError(t, err)

	_, err = env.exercises.Update(ctx, bob, ex.ID, models.ExerciseInput{Name: "hijack"})
	assert.True(t, IsKind(err, KindForbidden))
	assert.True(t, IsKind(env.exercises.Delete(ctx, bob, ex.ID), KindForbidden))

	list, err := env.exercises.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "swim", list[0].Name)

	require.NoError(t, env.exercises.Delete(ctx, alice, ex.ID))
	assert.True(t, IsKind(env.exercises.Delete(ctx, alice, ex.ID), KindNotFound))
}

func TestExerciseCreateForDeletedUser(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice")
	_, err := env.users.DeleteUser(ctx, formatID(alice))
	require.NoError(t, err)

	_, err = env.exercises.Create(ctx, alice, models.ExerciseInput{Name: "run"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound), err.Error())
}
