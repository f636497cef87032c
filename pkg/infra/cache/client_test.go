package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClientGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewClientFromRedis(db)

	mock.ExpectGet("k").SetVal("v")
	got, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClientGetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewClientFromRedis(db)

	mock.ExpectGet("missing").RedisNil()
	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClientSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewClientFromRedis(db)

	mock.ExpectSet("k", "v", time.Minute).SetVal("OK")
	assert.NoError(t, c.Set(context.Background(), "k", "v", time.Minute))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClientDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewClientFromRedis(db)

	mock.ExpectDel("k").SetVal(1)
	assert.NoError(t, c.Delete(context.Background(), "k"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
