package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninedttt/gamemaker-bot/testing/suite"
)

func TestRedisStore_RoundTrip_RealRedis(t *testing.T) {
	ctx, st := suite.New(t)

	store, err := NewRedisStore(ctx, st.Logger, fmt.Sprintf("redis://%s/0", st.Addr), "gamemaker:state")
	require.NoError(t, err)

	// Given: a snapshot with one in-flight game
	snapshot := sampleSnapshot()

	// When: saving and loading against a real redis
	require.NoError(t, store.Save(ctx, snapshot))
	loaded := store.Load(ctx)

	// Then: the round trip is lossless
	assert.Equal(t, snapshot.Watermark, loaded.Watermark)
	require.Contains(t, loaded.Sessions, "conv-1")
	assert.Equal(t, snapshot.Sessions["conv-1"].Board, loaded.Sessions["conv-1"].Board)
}
