package biz

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/ball"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
	"github.com/henryforrest/The-Cube-Game/internal/biz/gate"
	"github.com/henryforrest/The-Cube-Game/internal/conf"
	"github.com/henryforrest/The-Cube-Game/internal/notify"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewUseCase)

// 业务常量
const (
	defaultMirrorWorkers = 8
	mirrorTimeout        = 5 * time.Second
)

// LeaderboardEntry 排行榜条目（远端存储的只读投影）
type LeaderboardEntry struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	TodayScore  int    `json:"today_score"`
	BestScore   int    `json:"best_score"`
}

// ResultRow 投票/答题的追加记录
type ResultRow struct {
	PlayerID string
	Game     string
	Word     string
	Answer   string
	Day      string
}

// DataRepo 数据层接口：本地 KV / 远端镜像 / 排行榜 / 答案统计 / 快照上传
type DataRepo interface {
	gate.Store

	MirrorScore(ctx context.Context, collection, playerID string, todayScore int) error
	QueryLeaderboard(ctx context.Context, collection string, limit int) ([]LeaderboardEntry, error)
	IncrAnswer(ctx context.Context, gameSlug, day, answer string) (count, total int64, err error)
	InsertResult(ctx context.Context, row ResultRow) error
	UploadBytes(ctx context.Context, bucket, key, contentType string, data []byte) (string, error)
}

// UseCase 编排层：通过 DataRepo + 游戏池 + 每日锁编排玩法
type UseCase struct {
	ctx    context.Context
	cancel context.CancelFunc

	repo     DataRepo
	log      *log.Helper
	c        *conf.Game
	gamePool *game.Pool
	gate     *gate.Gate

	ballPool *ball.SessionPool
	notify   notify.Notifier
	mirror   *mirrorWorker

	rngMu sync.Mutex
	rng   *rand.Rand

	// 形状记忆每局的目标折线，提交时取出
	shapeMu      sync.Mutex
	shapeTargets map[string][]geom.Point
}

// NewUseCase 创建 UseCase
func NewUseCase(repo DataRepo, logger log.Logger, c *conf.Game, notifier notify.Notifier) (*UseCase, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	workers := defaultMirrorWorkers
	if c != nil && c.MirrorWorkers > 0 {
		workers = int(c.MirrorWorkers)
	}
	mirror, err := newMirrorWorker(workers, repo, logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	uc := &UseCase{
		ctx:          ctx,
		cancel:       cancel,
		repo:         repo,
		log:          log.NewHelper(logger),
		c:            c,
		gamePool:     game.NewPool(),
		gate:         gate.New(repo, logger),
		ballPool:     ball.NewSessionPool(),
		notify:       notifier,
		mirror:       mirror,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		shapeTargets: make(map[string][]geom.Point),
	}

	if c != nil && c.SnapshotEvery.AsDuration() > 0 {
		go uc.runSnapshotLoop(c.SnapshotEvery.AsDuration())
	}

	cleanup := func() {
		uc.cancel()
		uc.mirror.release()
	}
	return uc, cleanup, nil
}

// GetGame 按 slug 获取玩法
func (uc *UseCase) GetGame(slug string) (base.IGame, bool) {
	return uc.gamePool.Get(slug)
}

// ListGames 返回玩法列表副本（按 slug 升序）
func (uc *UseCase) ListGames() []base.IGame {
	return uc.gamePool.List()
}

// CheckLock 查询当日锁状态
func (uc *UseCase) CheckLock(ctx context.Context, playerID, slug string, now time.Time) (gate.LockState, error) {
	gm, ok := uc.gamePool.Get(slug)
	if !ok {
		return gate.LockState{}, errors.Newf(404, "GAME_NOT_FOUND", "game not found: %s", slug)
	}
	return uc.gate.CheckLock(ctx, playerID, gm, now)
}

// Reset 调试入口：清除当日记录。未开启 dev_reset 时拒绝
func (uc *UseCase) Reset(ctx context.Context, playerID, slug string, now time.Time) error {
	if uc.c == nil || !uc.c.DevReset {
		return errors.New(403, "RESET_DISABLED", "dev reset is disabled")
	}
	gm, ok := uc.gamePool.Get(slug)
	if !ok {
		return errors.Newf(404, "GAME_NOT_FOUND", "game not found: %s", slug)
	}
	uc.clearShapeTarget(playerID)
	return uc.gate.Reset(ctx, playerID, gm, now)
}

// commit 走每日锁落记录，成功后补发远端镜像并上报指标
func (uc *UseCase) commit(ctx context.Context, playerID string, gm base.IGame, now time.Time, score int, outcome gate.Outcome) (gate.AttemptRecord, error) {
	rec, err := uc.gate.CommitAttempt(ctx, playerID, gm, now, score, outcome)
	if err != nil {
		if gate.IsAlreadyAttempted(err) {
			mLockedRejects.WithLabelValues(gm.Slug()).Inc()
		}
		return gate.AttemptRecord{}, err
	}

	observeAttempt(gm.Slug(), string(outcome), score)
	if col := gm.Collection(); col != "" {
		uc.mirror.enqueue(col, playerID, score)
	}
	return rec, nil
}

// randFloat 供形状目标生成等处取随机数（rand.Rand 非并发安全）
func (uc *UseCase) withRand(fn func(r *rand.Rand)) {
	uc.rngMu.Lock()
	defer uc.rngMu.Unlock()
	fn(uc.rng)
}
