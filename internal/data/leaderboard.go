package data

import (
	"context"
	"strconv"

	"github.com/henryforrest/The-Cube-Game/internal/biz"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// 榜单补齐展示字段的并发上限
const lookupConcurrency = 10

func userKey(playerID string) string {
	return "users:" + playerID
}

// QueryLeaderboard 按历史最佳倒序取前 limit 名，再并发补齐 todayScore 与用户名
func (r *dataRepo) QueryLeaderboard(ctx context.Context, collection string, limit int) ([]biz.LeaderboardEntry, error) {
	members, err := r.data.rdb.ZRevRangeWithScores(ctx, bestKey(collection), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]biz.LeaderboardEntry, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, m := range members {
		playerID, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries[i] = biz.LeaderboardEntry{
			PlayerID:    playerID,
			DisplayName: playerID, // 查不到用户名时回退展示玩家 ID
			BestScore:   int(m.Score),
		}
		idx := i
		g.Go(func() error {
			e := &entries[idx]
			if today, err := r.data.rdb.HGet(gctx, docKey(collection, e.PlayerID), "todayScore").Result(); err == nil {
				if v, err := strconv.Atoi(today); err == nil {
					e.TodayScore = v
				}
			} else if err != redis.Nil {
				r.log.Warnf("leaderboard hydrate %s/%s: %v", collection, e.PlayerID, err)
			}
			if name, err := r.data.rdb.HGet(gctx, userKey(e.PlayerID), "username").Result(); err == nil && name != "" {
				e.DisplayName = name
			}
			return nil
		})
	}
	_ = g.Wait()
	return entries, nil
}
