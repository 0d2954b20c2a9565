package services

import (
	"context"
	"testing"
	"time"
	"venued/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIn_StoresCurrentAndClearsReminder(t *testing.T) {
	env := newVenueEnv()
	ctx := context.Background()
	require.NoError(t, env.kv.Set(ctx, storage.KeyLastReminder, baseTime.Add(-time.Hour)))

	rec, err := env.checkIns(baseTime).CheckIn(ctx, " cafe ", true)
	require.NoError(t, err)
	assert.Equal(t, "cafe", rec.Name)
	assert.True(t, rec.PlusSelected)
	assert.True(t, rec.IsOpen())

	cur := env.current(t)
	require.NotNil(t, cur)
	assert.Equal(t, "cafe", cur.QrPayload)
	last, err := storage.GetTime(ctx, env.kv, storage.KeyLastReminder)
	require.NoError(t, err)
	assert.Nil(t, last)
	assert.Equal(t, 1, env.tracker.count(EventCheckIn))
}

func TestCheckIn_RejectsSecondCheckIn(t *testing.T) {
	env := newVenueEnv()
	cs := env.checkIns(baseTime)
	_, err := cs.CheckIn(context.Background(), "cafe", false)
	require.NoError(t, err)

	_, err = cs.CheckIn(context.Background(), "bar", false)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Equal(t, "cafe", env.current(t).Name)
}

func TestCheckIn_InvalidPayload(t *testing.T) {
	env := newVenueEnv()
	_, err := env.checkIns(baseTime).CheckIn(context.Background(), "  ", false)
	assert.Error(t, err)
	assert.Nil(t, env.current(t))
}

func TestCheckOut_MovesRecordToHistory(t *testing.T) {
	env := newVenueEnv()
	ctx := context.Background()
	_, err := env.checkIns(baseTime).CheckIn(ctx, "cafe", false)
	require.NoError(t, err)

	departure := baseTime.Add(90 * time.Minute)
	closed, err := env.checkIns(baseTime.Add(2*time.Hour)).CheckOut(ctx, &departure)
	require.NoError(t, err)
	assert.Equal(t, "checkout-1", closed.CheckOutId)

	assert.Nil(t, env.current(t))
	visited := env.visited(t)
	require.Len(t, visited, 1)
	assert.True(t, visited[0].CheckOutTime.Equal(departure))
}

func TestCheckOut_DefaultsToNow(t *testing.T) {
	env := newVenueEnv()
	ctx := context.Background()
	_, err := env.checkIns(baseTime).CheckIn(ctx, "cafe", false)
	require.NoError(t, err)

	now := baseTime.Add(time.Hour)
	closed, err := env.checkIns(now).CheckOut(ctx, nil)
	require.NoError(t, err)
	assert.True(t, closed.CheckOutTime.Equal(now))
}

func TestCheckOut_Errors(t *testing.T) {
	env := newVenueEnv()
	ctx := context.Background()

	_, err := env.checkIns(baseTime).CheckOut(ctx, nil)
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	_, err = env.checkIns(baseTime).CheckIn(ctx, "cafe", false)
	require.NoError(t, err)
	before := baseTime.Add(-time.Minute)
	_, err = env.checkIns(baseTime).CheckOut(ctx, &before)
	assert.ErrorIs(t, err, ErrInvalidCheckOut)
	assert.NotNil(t, env.current(t))
	assert.Zero(t, env.resolver.CheckOuts)
}

func TestHide_FiltersVisited(t *testing.T) {
	env := newVenueEnv()
	ctx := context.Background()
	require.NoError(t, env.store.AppendVisited(ctx, visit("a", baseTime)))
	require.NoError(t, env.store.AppendVisited(ctx, visit("b", baseTime)))
	cs := env.checkIns(baseTime)

	require.NoError(t, cs.Hide(ctx, "a"))
	require.NoError(t, cs.Hide(ctx, "a"))
	assert.ErrorIs(t, cs.Hide(ctx, "missing"), ErrRecordNotFound)

	shown, err := cs.Visited(ctx, false)
	require.NoError(t, err)
	require.Len(t, shown, 1)
	assert.Equal(t, "b", shown[0].CheckOutId)

	all, err := cs.Visited(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].Hidden)
}
