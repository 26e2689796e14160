package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/flowserve/pkg/adapters/redis"
	"github.com/aretw0/flowserve/pkg/domain"
	contract "github.com/aretw0/flowserve/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Loader) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	loader := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = loader.Close() })
	return mr, loader
}

func sample() *domain.Definition {
	return &domain.Definition{
		Nodes: []domain.Node{
			{ID: "start", Type: domain.NodeTypeAPI},
			{ID: "check", Type: domain.NodeTypeLogic, Data: map[string]any{"condition": "1 == 1"}},
			{ID: "reply", Type: domain.NodeTypeResponse},
		},
		Edges: []domain.Edge{
			{Source: "start", Target: "check"},
			{Source: "check", Target: "reply", Handle: domain.HandleTrue},
		},
	}
}

func TestRedisLoader_Contract(t *testing.T) {
	_, loader := setup(t)
	require.NoError(t, loader.Publish(context.Background(), sample()))

	contract.GraphLoaderContractTest(t, loader, sample())
}

func TestRedisLoader_KeyLayout(t *testing.T) {
	mr, loader := setup(t, redis.WithKey("tenant:graph"))
	require.NoError(t, loader.Publish(context.Background(), sample()))

	assert.Equal(t, "tenant:graph", loader.Key())
	assert.True(t, mr.Exists("tenant:graph"))
	assert.False(t, mr.Exists(redis.DefaultKey))
}

func TestRedisLoader_ReadsForeignJSON(t *testing.T) {
	mr, loader := setup(t)
	require.NoError(t, mr.Set(redis.DefaultKey, `{
		"nodes": [{"id": "a", "type": "api"}, {"id": "b", "type": "loop"}],
		"edges": [{"source": "b", "target": "a", "sourceHandle": "do"}]
	}`))

	def, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.HandleDo, def.Edges[0].Handle)
}

func TestRedisLoader_Errors(t *testing.T) {
	mr, loader := setup(t)
	ctx := context.Background()

	_, err := loader.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	require.NoError(t, mr.Set(redis.DefaultKey, "not json"))
	_, err = loader.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)

	assert.ErrorIs(t, loader.Publish(ctx, nil), domain.ErrInvalidDefinition)
}

func TestRedisLoader_Watch(t *testing.T) {
	_, loader := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := loader.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, loader.Publish(ctx, sample()))

	select {
	case _, ok := <-updates:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected an update notification")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-updates:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
