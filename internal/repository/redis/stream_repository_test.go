package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	redisRepo "github.com/landscape-review/internal/repository/redis"
)

const (
	testRequestStream = "test:stream:analysis:request"
	testDoneStream    = "test:stream:analysis:done"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testRequestStream, testDoneStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testRequestStream, testDoneStream)
		_ = client.Close()
	})

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	err := repo.CreateConsumerGroup(ctx, testRequestStream, "test-group")
	require.NoError(t, err)

	groups, err := client.XInfoGroups(ctx, testRequestStream).Result()
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	// Creating again should not error (BUSYGROUP handled)
	err = repo.CreateConsumerGroup(ctx, testRequestStream, "test-group")
	assert.NoError(t, err)
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	requestID := uuid.New()
	event := &domain.AnalysisDoneEvent{
		RequestID: requestID,
		Location: &domain.LocationSummary{
			Address:  "광주광역시 서구 치평동 1200",
			ParcelID: "2914010100112000000",
			Region:   domain.RegionGwangju,
		},
		Result: domain.NewAnalysisResult(),
	}

	err := repo.PublishToStream(ctx, testDoneStream, event)
	require.NoError(t, err)

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{testDoneStream, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	dataStr, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var received domain.AnalysisDoneEvent
	require.NoError(t, json.Unmarshal([]byte(dataStr), &received))
	assert.Equal(t, requestID, received.RequestID)
	require.NotNil(t, received.Location)
	assert.Equal(t, "2914010100112000000", received.Location.ParcelID)
}

func TestStreamRepository_ConsumeBatchAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()
	group := "test-batch-group"

	require.NoError(t, repo.CreateConsumerGroup(ctx, testRequestStream, group))

	keyword := "치평동 1200"
	for i := 0; i < 3; i++ {
		err := repo.PublishToStream(ctx, testRequestStream, &domain.AnalysisRequestEvent{
			RequestID: uuid.New(),
			Keyword:   &keyword,
		})
		require.NoError(t, err)
	}

	messages, err := repo.ConsumeBatch(ctx, testRequestStream, group, "test-consumer", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	var event domain.AnalysisRequestEvent
	require.NoError(t, json.Unmarshal([]byte(messages[0].Data), &event))
	assert.True(t, event.HasKeyword())

	pending, err := client.XPending(ctx, testRequestStream, group).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.Count)

	ids := []string{messages[0].ID, messages[1].ID}
	require.NoError(t, repo.AckMessages(ctx, testRequestStream, group, ids))

	pending, err = client.XPending(ctx, testRequestStream, group).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	rest, err := repo.ConsumeBatch(ctx, testRequestStream, group, "test-consumer", 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.NoError(t, repo.AckMessage(ctx, testRequestStream, group, rest[0].ID))
}

func TestStreamRepository_ConsumeBatch_Empty(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testRequestStream, "test-empty-group"))

	messages, err := repo.ConsumeBatch(ctx, testRequestStream, "test-empty-group", "test-consumer", 5)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestStreamRepository_AckMessages_NoIDs(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())

	assert.NoError(t, repo.AckMessages(context.Background(), testRequestStream, "any", nil))
}
