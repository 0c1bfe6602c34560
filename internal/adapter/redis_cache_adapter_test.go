package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"note-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const quizzesKey = "notequiz:note:quizzes:01HNOTE"

var quizzesJSON = `[{"question":"What is 2+2?","options":{"a":"3","b":"4","c":"5","d":"6"},"correctAnswer":"b"}]`

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Hit", func(t *testing.T) {
		mock.ExpectGet(quizzesKey).SetVal(quizzesJSON)
		val, err := adapter.Get(ctx, quizzesKey)
		assert.NoError(t, err)
		assert.Equal(t, quizzesJSON, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		mock.ExpectGet(quizzesKey).RedisNil()
		val, err := adapter.Get(ctx, quizzesKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(quizzesKey).SetErr(redisErr)
		val, err := adapter.Get(ctx, quizzesKey)
		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	ttl := time.Hour

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(quizzesKey, quizzesJSON, ttl).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, quizzesKey, quizzesJSON, ttl))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("OOM")
		mock.ExpectSet(quizzesKey, quizzesJSON, ttl).SetErr(redisErr)
		err := adapter.Set(ctx, quizzesKey, quizzesJSON, ttl)
		assert.ErrorIs(t, err, redisErr)
		assert.ErrorContains(t, err, quizzesKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_SetIfAbsent(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	ttl := time.Hour

	t.Run("Stored", func(t *testing.T) {
		mock.ExpectSetNX(quizzesKey, quizzesJSON, ttl).SetVal(true)
		stored, err := adapter.SetIfAbsent(ctx, quizzesKey, quizzesJSON, ttl)
		assert.NoError(t, err)
		assert.True(t, stored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyExists", func(t *testing.T) {
		mock.ExpectSetNX(quizzesKey, quizzesJSON, ttl).SetVal(false)
		stored, err := adapter.SetIfAbsent(ctx, quizzesKey, quizzesJSON, ttl)
		assert.NoError(t, err)
		assert.False(t, stored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("READONLY")
		mock.ExpectSetNX(quizzesKey, quizzesJSON, ttl).SetErr(redisErr)
		_, err := adapter.SetIfAbsent(ctx, quizzesKey, quizzesJSON, ttl)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(quizzesKey).SetVal(1)
		assert.NoError(t, adapter.Delete(ctx, quizzesKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyNotFound", func(t *testing.T) {
		mock.ExpectDel(quizzesKey).SetVal(0)
		assert.NoError(t, adapter.Delete(ctx, quizzesKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("READONLY")
		mock.ExpectDel(quizzesKey).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Delete(ctx, quizzesKey), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(ctx))

	mock.ExpectPing().SetErr(redis.ErrClosed)
	assert.ErrorIs(t, adapter.Ping(ctx), redis.ErrClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
