package service

import (
	"challengehub_backend/internal/config"
	"challengehub_backend/internal/repository"
	"challengehub_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Department  string `json:"department"`
	TotalPoints int    `json:"totalPoints"`
}

// swagger:model LeaderboardPage
type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int64              `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

// LeaderboardService 排行榜读取，redis 短 TTL 缓存
// 缓存键带版本号，积分变动时递增版本号整体失效，不逐键删除
type LeaderboardService struct {
	Users *repository.UserRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewLeaderboardService(users *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *LeaderboardService {
	return &LeaderboardService{
		Users: users,
		Redis: rdb,
		TTL:   time.Duration(cfg.Leaderboard.CacheTTLSeconds) * time.Second,
	}
}

const leaderboardVersionKey = "leaderboard:version"

func (s *LeaderboardService) cacheKey(ctx context.Context, department string, limit, offset int) string {
	version, err := s.Redis.Get(ctx, leaderboardVersionKey).Result()
	if err != nil {
		version = "0"
	}
	return fmt.Sprintf("leaderboard:%s:%s:%d:%d", version, department, limit, offset)
}

func (s *LeaderboardService) Get(department string, limit, offset int) (*LeaderboardPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ctx := context.Background()
	var key string
	if s.Redis != nil {
		key = s.cacheKey(ctx, department, limit, offset)
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var page LeaderboardPage
			if json.Unmarshal([]byte(cached), &page) == nil {
				return &page, nil
			}
		}
	}

	users, total, err := s.Users.FindTopByPoints(department, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:        offset + i + 1,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Department:  user.Department,
			TotalPoints: user.TotalPoints,
		}
	}

	page := &LeaderboardPage{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(page); err == nil {
			if err := s.Redis.Set(ctx, key, payload, s.TTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return page, nil
}

// Invalidate 积分变动后调用，递增版本号让所有缓存页失效
func (s *LeaderboardService) Invalidate() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Incr(context.Background(), leaderboardVersionKey).Err(); err != nil {
		logger.Log.Warn("leaderboard cache invalidation failed", zap.Error(err))
	}
}
