package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"articles-backend/internal/config"
)

func TestRedisClientOptCarriesCredentials(t *testing.T) {
	opt := RedisClientOpt(config.RedisConfig{
		Host:     "redis.internal:6380",
		Password: "hunter2",
		DB:       3,
	})

	assert.Equal(t, "redis.internal:6380", opt.Addr)
	assert.Equal(t, "hunter2", opt.Password)
	assert.Equal(t, 3, opt.DB)
}
