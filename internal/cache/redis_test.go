package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisCacheUnreachable(t *testing.T) {
	c, err := NewRedisCache("redis://127.0.0.1:1/0")
	assert.Nil(t, c)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
