// Package gate 每日一次的攻略锁。以 (玩家, 玩法, 自然日) 为粒度，
// 本地存储为准，跨日自动解锁（键里带日期，无需显式状态迁移）
package gate

import (
	"context"
	"strconv"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// ReasonAlreadyAttempted CommitAttempt 在当日已有记录时返回的错误原因码
const ReasonAlreadyAttempted = "ALREADY_ATTEMPTED_TODAY"

// Outcome 单日攻略结果
type Outcome string

const (
	OutcomeWin  Outcome = "win"  // 命中（隐形球）
	OutcomeLose Outcome = "lose" // 未命中（隐形球）
	OutcomeDone Outcome = "done" // 已完成（计分或投票类）
	OutcomeFail Outcome = "fail" // 无效手势（采样不足计 0 分）
)

// LockState 当日锁状态
type LockState struct {
	Locked        bool `json:"locked"`
	PreviousScore int  `json:"previous_score"`
}

// AttemptRecord 每 (玩家, 玩法, 自然日) 至多一条，提交后当日不再变更
type AttemptRecord struct {
	PlayerID string  `json:"player_id"`
	Game     string  `json:"game"`
	Day      string  `json:"day"`
	Score    int     `json:"score"`
	Outcome  Outcome `json:"outcome"`
}

// Store 本地持久化：按玩家命名空间的 KV，单键原子即可
type Store interface {
	Get(ctx context.Context, playerID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, playerID, key, value string) error
	Remove(ctx context.Context, playerID, key string) error
}

// Day 自然日边界：本地时区的日期部分，与一天内的时刻无关
func Day(now time.Time) string {
	return now.Format("2006-01-02")
}

// Gate 每日攻略锁
type Gate struct {
	store Store
	log   *log.Helper
}

func New(store Store, logger log.Logger) *Gate {
	return &Gate{
		store: store,
		log:   log.NewHelper(logger),
	}
}

// CheckLock 查询 (玩家, 玩法) 在 now 所在自然日是否已攻略。
// 已攻略返回 Locked 及当日分数
func (g *Gate) CheckLock(ctx context.Context, playerID string, gm base.IGame, now time.Time) (LockState, error) {
	day := Day(now)

	attemptDay, ok, err := g.store.Get(ctx, playerID, gm.AttemptKey(day))
	if err != nil {
		return LockState{}, err
	}
	if !ok || attemptDay != day {
		return LockState{}, nil
	}

	score := 0
	if raw, ok, err := g.store.Get(ctx, playerID, gm.ScoreKey(day)); err != nil {
		return LockState{}, err
	} else if ok {
		score, _ = strconv.Atoi(raw)
	}
	return LockState{Locked: true, PreviousScore: score}, nil
}

// CommitAttempt 落当日记录。已锁返回 ALREADY_ATTEMPTED_TODAY 且不改动已存分数。
// 只写本地；远端镜像由上层尽力而为地补发，失败不影响本次提交
func (g *Gate) CommitAttempt(ctx context.Context, playerID string, gm base.IGame, now time.Time, score int, outcome Outcome) (AttemptRecord, error) {
	state, err := g.CheckLock(ctx, playerID, gm, now)
	if err != nil {
		return AttemptRecord{}, err
	}
	if state.Locked {
		return AttemptRecord{}, errors.Newf(409, ReasonAlreadyAttempted,
			"player %s already attempted %s today", playerID, gm.Slug())
	}

	day := Day(now)
	if err := g.store.Set(ctx, playerID, gm.ScoreKey(day), strconv.Itoa(score)); err != nil {
		return AttemptRecord{}, err
	}
	if err := g.store.Set(ctx, playerID, gm.AttemptKey(day), day); err != nil {
		return AttemptRecord{}, err
	}

	g.log.WithContext(ctx).Infof("attempt committed: player=%s game=%s day=%s score=%d outcome=%s",
		playerID, gm.Slug(), day, score, outcome)
	return AttemptRecord{
		PlayerID: playerID,
		Game:     gm.Slug(),
		Day:      day,
		Score:    score,
		Outcome:  outcome,
	}, nil
}

// Reset 删除当日记录，回到未攻略状态。仅供测试环境的调试入口使用
func (g *Gate) Reset(ctx context.Context, playerID string, gm base.IGame, now time.Time) error {
	day := Day(now)
	if err := g.store.Remove(ctx, playerID, gm.AttemptKey(day)); err != nil {
		return err
	}
	return g.store.Remove(ctx, playerID, gm.ScoreKey(day))
}

// IsAlreadyAttempted 判断是否为当日已攻略错误
func IsAlreadyAttempted(err error) bool {
	return errors.Reason(err) == ReasonAlreadyAttempted
}
