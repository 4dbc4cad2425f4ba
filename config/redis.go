package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/CopperGroup/JoyFer/utils"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

func ConnectRedis(s *Settings) error {
	opt, err := redis.ParseURL(s.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	res, err := client.Ping(Ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	utils.Log.Infof("✅ Connected to Redis: %s", res)
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
