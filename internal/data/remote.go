package data

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// bestKey 榜单 zset，分数为历史最佳，只增不减
func bestKey(collection string) string {
	return collection + ":best"
}

// docKey 玩家镜像 hash
func docKey(collection, playerID string) string {
	return collection + ":" + playerID
}

// MirrorScore 合并更新玩家镜像：todayScore 覆盖、lastPlayed 取服务器时间，
// bestScore 走 zset 的 GT 语义保证单调不降
func (r *dataRepo) MirrorScore(ctx context.Context, collection, playerID string, todayScore int) error {
	pipe := r.data.rdb.TxPipeline()
	pipe.HSet(ctx, docKey(collection, playerID), map[string]interface{}{
		"todayScore": todayScore,
		"lastPlayed": time.Now().Unix(),
	})
	pipe.ZAddGT(ctx, bestKey(collection), redis.Z{
		Score:  float64(todayScore),
		Member: playerID,
	})
	_, err := pipe.Exec(ctx)
	return err
}
