//go:build ignore

// Публикует событие изменения в стрим и ждёт, пока stats worker
// обновит снимок статистики в Redis.
//
//	go run scripts/test_publish.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/repository/cache"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", "stream:geo:changes", "Changes stream")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	before := lastUpdated(ctx, client)

	event := domain.ChangeEvent{
		Kind: domain.CityKind.Singular,
		Op:   domain.ChangeCreated,
		Key:  domain.Key{Name: "Springfield", StateCode: "IL"},
		ID:   uuid.NewString(),
		At:   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", *stream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Key: %s\n", event.Key)

	fmt.Printf("\nWaiting for %s to change...\n", cache.StatsKey)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for stats refresh")
			return
		case <-ticker.C:
			if current := lastUpdated(ctx, client); current != "" && current != before {
				raw, _ := client.Get(ctx, cache.StatsKey).Result()
				fmt.Printf("\nStats refreshed:\n%s\n", raw)
				return
			}
		}
	}
}

func lastUpdated(ctx context.Context, client *redis.Client) string {
	raw, err := client.Get(ctx, cache.StatsKey).Result()
	if err != nil {
		return ""
	}
	var stats domain.Statistics
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return ""
	}
	return stats.LastUpdated.String()
}
