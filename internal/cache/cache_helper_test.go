package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHelper(t *testing.T, prefix string) *CacheHelper {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, prefix)
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper := newTestHelper(t, "question_set:")
	ctx := context.Background()

	type payload struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}

	require.NoError(t, helper.Set(ctx, "id:1", payload{ID: 1, Title: "Go Basics"}, time.Minute))

	var got payload
	require.NoError(t, helper.Get(ctx, "id:1", &got))
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "Go Basics", got.Title)
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper := newTestHelper(t, "result:")

	var dest map[string]any
	err := helper.Get(context.Background(), "session:99", &dest)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "fast:")
	ctx := context.Background()

	assert.NoError(t, helper.Set(ctx, "k", "v", time.Minute))
	assert.NoError(t, helper.Delete(ctx, "k"))

	var dest string
	assert.ErrorIs(t, helper.Get(ctx, "k", &dest), ErrCacheNotAvailable)
}

func TestCacheHelper_DeleteAndExists(t *testing.T) {
	helper := newTestHelper(t, "exists:")
	ctx := context.Background()

	require.NoError(t, helper.SetString(ctx, "question_set:1", "1", time.Minute))

	exists, err := helper.Exists(ctx, "question_set:1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, helper.Delete(ctx, "question_set:1"))

	exists, err = helper.Exists(ctx, "question_set:1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper := newTestHelper(t, "question_set:")
	ctx := context.Background()

	require.NoError(t, helper.SetString(ctx, "list:active", "[]", time.Minute))
	require.NoError(t, helper.SetString(ctx, "list:all", "[]", time.Minute))
	require.NoError(t, helper.SetString(ctx, "id:1", "{}", time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "list:*"))

	exists, err := helper.Exists(ctx, "list:active")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = helper.Exists(ctx, "id:1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCacheHelper_CacheOrExecuteFetchesOnMiss(t *testing.T) {
	helper := newTestHelper(t, "fast:")
	ctx := context.Background()

	calls := 0
	var got int
	err := helper.CacheOrExecute(ctx, "session:1", &got, time.Minute, func() (interface{}, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestCacheManager_InvalidateQuestionSet(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cm := NewCacheManager(client)
	ctx := context.Background()

	require.NoError(t, cm.QuestionSet.SetString(ctx, "id:5", "{}", time.Minute))
	require.NoError(t, cm.QuestionSet.SetString(ctx, "list:active", "[]", time.Minute))
	require.NoError(t, cm.Fast.SetString(ctx, "session:3", "{}", time.Minute))

	cm.InvalidateQuestionSet(ctx, 5)

	for _, key := range []string{"id:5", "list:active"} {
		exists, err := cm.QuestionSet.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %s should be invalidated", key)
	}

	exists, err := cm.Fast.Exists(ctx, "session:3")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCacheManager_InvalidateSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cm := NewCacheManager(client)
	ctx := context.Background()

	require.NoError(t, cm.Fast.SetString(ctx, "session:3", "{}", time.Minute))
	require.NoError(t, cm.Result.SetString(ctx, "session:3", "{}", time.Minute))

	cm.InvalidateSession(ctx, 3)

	for _, helper := range []*CacheHelper{cm.Fast, cm.Result} {
		exists, err := helper.Exists(ctx, "session:3")
		require.NoError(t, err)
		assert.False(t, exists)
	}
}
