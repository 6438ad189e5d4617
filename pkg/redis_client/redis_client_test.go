package redis_client

import (
	"context"
	"testing"

	"github.com/Zandri2k/Travel-Planner/pkg/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := Connect(context.Background(), &config.Config{RedisAddress: server.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "key", "value", 0).Err())
	assert.Equal(t, []string{"key"}, server.Keys())
}

func TestConnectWithoutAddress(t *testing.T) {
	client, err := Connect(context.Background(), &config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestConnectUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	address := server.Addr()
	server.Close()

	_, err := Connect(context.Background(), &config.Config{RedisAddress: address})
	assert.Error(t, err)
}
