package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/notify"
	"github.com/henryforrest/The-Cube-Game/pkg/xgo"

	"github.com/go-kratos/kratos/v2/errors"
)

// 排行榜常量
const (
	leaderboardLimit = 10
	snapshotTimeout  = 2 * time.Minute
)

// Leaderboard 某玩法 bestScore 倒序前十
func (uc *UseCase) Leaderboard(ctx context.Context, slug string) ([]LeaderboardEntry, error) {
	gm, ok := uc.gamePool.Get(slug)
	if !ok {
		return nil, errors.Newf(404, "GAME_NOT_FOUND", "game not found: %s", slug)
	}
	if gm.Collection() == "" {
		return nil, errors.Newf(400, "NO_LEADERBOARD", "game %s has no leaderboard", slug)
	}
	return uc.repo.QueryLeaderboard(ctx, gm.Collection(), leaderboardLimit)
}

// runSnapshotLoop 周期导出各玩法排行榜快照到对象存储，ctx 取消后退出
func (uc *UseCase) runSnapshotLoop(every time.Duration) {
	defer xgo.RecoverFromError(nil)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-uc.ctx.Done():
			return
		case <-ticker.C:
			uc.snapshotLeaderboards()
		}
	}
}

// snapshotLeaderboards 导出一轮快照并发送通知
func (uc *UseCase) snapshotLeaderboards() {
	ctx, cancel := context.WithTimeout(uc.ctx, snapshotTimeout)
	defer cancel()

	started := time.Now()
	day := started.Format("2006-01-02")
	var lines []string

	for _, gm := range uc.gamePool.List() {
		if gm.Collection() == "" {
			continue
		}
		entries, err := uc.repo.QueryLeaderboard(ctx, gm.Collection(), leaderboardLimit)
		if err != nil {
			mSnapshotUploads.WithLabelValues("failed").Inc()
			uc.log.Warnf("snapshot query failed: game=%s: %v", gm.Slug(), err)
			continue
		}

		key := fmt.Sprintf("leaderboards/%s/%s.json", day, gm.Slug())
		url, err := uc.repo.UploadBytes(ctx, "", key, "application/json", []byte(xgo.ToJSONPretty(entries)))
		if err != nil {
			mSnapshotUploads.WithLabelValues("failed").Inc()
			uc.log.Warnf("snapshot upload failed: game=%s: %v", gm.Slug(), err)
			continue
		}
		mSnapshotUploads.WithLabelValues("ok").Inc()
		lines = append(lines, fmt.Sprintf("**%s**：%d 条，%s", gm.Name(), len(entries), url))
	}

	if len(lines) == 0 {
		return
	}
	msg := notify.BuildSnapshotMessage(day, xgo.ShortDuration(time.Since(started)), lines)
	if err := uc.notify.Send(ctx, msg); err != nil {
		uc.log.Warnf("snapshot notify failed: %v", err)
	}
}
