package cache

import (
	"context"
	"testing"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_Disabled(t *testing.T) {
	client, err := NewRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedis_BadURL(t *testing.T) {
	client, err := NewRedis(context.Background(), config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
	assert.Nil(t, client)
}
