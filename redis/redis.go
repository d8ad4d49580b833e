package redis

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stnicholas-parish/parish-app/utils"
)

var ctx = context.Background()

// busySlotTTL bounds staleness of cached availability between writes.
const busySlotTTL = 5 * time.Minute

// Cache wraps the redis client used for busy-slot responses. A nil *Cache
// is valid and disables caching, so the server runs without redis.
type Cache struct {
	client *redis.Client
}

// New connects to redis when REDIS_ADDR is set, otherwise returns nil.
func New() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis at %s: %v (caching disabled)", addr, err)
		return nil
	}
	log.Println("✅ Connected to Redis")
	return &Cache{client: client}
}

func busySlotKey(date string) string {
	return "busy-slots:" + date
}

// GetBusySlots returns the cached busy slots for a date (YYYY-MM-DD).
func (c *Cache) GetBusySlots(date string) ([]utils.BusySlot, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, busySlotKey(date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []utils.BusySlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// SetBusySlots caches the busy slots for a date.
func (c *Cache) SetBusySlots(date string, slots []utils.BusySlot) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.client.Set(ctx, busySlotKey(date), raw, busySlotTTL)
}

// InvalidateBusySlots drops the cached slots for a date after a booking,
// reschedule or status change touches it.
func (c *Cache) InvalidateBusySlots(date string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, busySlotKey(date))
}
