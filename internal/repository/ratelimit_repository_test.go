package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"photostudio/internal/repository"
	redisapp "photostudio/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRepo() (*repository.RedisRateLimitRepo, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return repository.NewRedisRateLimitRepo(redisapp.Wrap(db), "contact"), mock
}

func TestRedisRateLimitRepo_Hit(t *testing.T) {
	ctx := context.Background()
	key := "ratelimit:contact:203.0.113.7"

	t.Run("first hit starts the window", func(t *testing.T) {
		repo, mock := setupRateLimitRepo()

		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetVal(1)
		mock.ExpectExpireNX(key, time.Hour).SetVal(true)
		mock.ExpectTxPipelineExec()

		n, err := repo.Hit(ctx, "203.0.113.7", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("later hits keep the window and still guard the ttl", func(t *testing.T) {
		repo, mock := setupRateLimitRepo()

		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetVal(4)
		mock.ExpectExpireNX(key, time.Hour).SetVal(false)
		mock.ExpectTxPipelineExec()

		n, err := repo.Hit(ctx, "203.0.113.7", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis error", func(t *testing.T) {
		repo, mock := setupRateLimitRepo()

		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetErr(errors.New("connection refused"))
		mock.ExpectExpireNX(key, time.Hour).SetVal(true)
		mock.ExpectTxPipelineExec()

		_, err := repo.Hit(ctx, "203.0.113.7", time.Hour)
		assert.Error(t, err)
	})
}
