package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"restaurant_manager/config"
	"restaurant_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const kitchenChannel = "kitchen:orders"

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

func getRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

// BroadcastKitchenOrder publishes an order change so every kitchen display
// picks it up, even across instances. Failures are logged and ignored, the
// HTTP response must not depend on Redis being up.
func BroadcastKitchenOrder(order *model.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := getRedis().Publish(context.Background(), kitchenChannel, payload).Err(); err != nil {
		log.Printf("kitchen broadcast failed: %v", err)
	}
}

// KitchenWebsocket streams live order updates to kitchen displays. Each
// connection holds its own subscription and writes only to itself, so the
// handler exits (and the subscription closes) as soon as the socket dies.
func KitchenWebsocket(c *websocket.Conn) {
	defer c.Close()

	// Initial snapshot so a fresh display is not empty until the next event.
	if queue, err := FetchKitchenQueue(); err == nil {
		c.WriteJSON(queue)
	}

	pubsub := getRedis().Subscribe(context.Background(), kitchenChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
