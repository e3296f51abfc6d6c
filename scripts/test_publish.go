//go:build ignore

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
)

const (
	requestStream = "stream:analysis:request"
	doneStream    = "stream:analysis:done"
)

type layerRef struct {
	Region   string `json:"region"`
	Category string `json:"category"`
	Name     string `json:"name,omitempty"`
	File     string `json:"file"`
}

type analysisRequestEvent struct {
	RequestID uuid.UUID  `json:"request_id"`
	Keyword   *string    `json:"keyword,omitempty"`
	Latitude  *float64   `json:"lat,omitempty"`
	Longitude *float64   `json:"lng,omitempty"`
	RadiusKm  *float64   `json:"radius_km,omitempty"`
	Layers    []layerRef `json:"layers"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	keyword := flag.String("keyword", "광주광역시 서구 치평동 1200", "address or place keyword")
	lat := flag.Float64("lat", 0, "latitude (used together with -lng instead of -keyword)")
	lng := flag.Float64("lng", 0, "longitude")
	radius := flag.Float64("radius", 3, "radius in km")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := analysisRequestEvent{
		RequestID: uuid.New(),
		RadiusKm:  radius,
		Layers: []layerRef{
			{Region: "광주광역시", Category: "경관지구", File: "경관지구.geojson"},
			{Region: "광주광역시", Category: "경관거점", File: "경관거점.geojson"},
		},
	}
	if *lat != 0 || *lng != 0 {
		event.Latitude = ptr(*lat)
		event.Longitude = ptr(*lng)
	} else {
		event.Keyword = keyword
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем хвост стрима ответов до публикации
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, doneStream, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: requestStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", requestStream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)

	fmt.Printf("\nWaiting for response in %s...\n", doneStream)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{doneStream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if id, _ := response["request_id"].(string); id == event.RequestID.String() {
					pretty, _ := json.MarshalIndent(response, "", "  ")
					fmt.Printf("\nResponse received:\n%s\n", pretty)
					return
				}
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
