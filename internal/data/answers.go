package data

import (
	"context"
	"time"
)

// 汇总字段名，避开正常答案取值
const totalField = "__total"

func answerKey(gameSlug, day string) string {
	return "answers:" + gameSlug + ":" + day
}

// IncrAnswer 按天累计答案计数，返回该答案票数与当日总票数。
// 当日 key 在首票时设置过期，次日零点后自动清理
func (r *dataRepo) IncrAnswer(ctx context.Context, gameSlug, day, answer string) (int64, int64, error) {
	key := answerKey(gameSlug, day)
	pipe := r.data.rdb.TxPipeline()
	countCmd := pipe.HIncrBy(ctx, key, answer, 1)
	totalCmd := pipe.HIncrBy(ctx, key, totalField, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	count, total := countCmd.Val(), totalCmd.Val()
	if total == 1 {
		if err := r.data.rdb.ExpireAt(ctx, key, nextMidnight(time.Now())).Err(); err != nil {
			r.log.Warnf("failed setting expiration for %s: %v", key, err)
		}
	}
	return count, total, nil
}

// nextMidnight 次日零点（本地时区）
func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
