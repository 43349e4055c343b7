package biz

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/circle"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
	"github.com/henryforrest/The-Cube-Game/internal/biz/gate"
	"github.com/henryforrest/The-Cube-Game/internal/conf"
	"github.com/henryforrest/The-Cube-Game/internal/notify"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// fakeRepo 内存版 DataRepo，测试替身
type fakeRepo struct {
	mu      sync.Mutex
	kv      map[string]string
	tallies map[string]int64
	totals  map[string]int64
	results []ResultRow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		kv:      make(map[string]string),
		tallies: make(map[string]int64),
		totals:  make(map[string]int64),
	}
}

func (f *fakeRepo) Get(_ context.Context, playerID, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.kv[playerID+":"+key]
	return v, ok, nil
}

func (f *fakeRepo) Set(_ context.Context, playerID, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[playerID+":"+key] = value
	return nil
}

func (f *fakeRepo) Remove(_ context.Context, playerID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.kv, playerID+":"+key)
	return nil
}

func (f *fakeRepo) MirrorScore(context.Context, string, string, int) error { return nil }

func (f *fakeRepo) QueryLeaderboard(context.Context, string, int) ([]LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakeRepo) IncrAnswer(_ context.Context, gameSlug, day, answer string) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tallies[gameSlug+":"+day+":"+answer]++
	f.totals[gameSlug+":"+day]++
	return f.tallies[gameSlug+":"+day+":"+answer], f.totals[gameSlug+":"+day], nil
}

func (f *fakeRepo) InsertResult(_ context.Context, row ResultRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, row)
	return nil
}

func (f *fakeRepo) UploadBytes(context.Context, string, string, string, []byte) (string, error) {
	return "https://example.test/snapshot", nil
}

func boolPtr(b bool) *bool { return &b }

func newTestUseCase(t *testing.T, c *conf.Game) *UseCase {
	t.Helper()
	if c == nil {
		c = &conf.Game{}
	}
	uc, cleanup, err := NewUseCase(newFakeRepo(), log.DefaultLogger, c, notify.Noop{})
	if err != nil {
		t.Fatalf("创建 UseCase 失败: %v", err)
	}
	t.Cleanup(cleanup)
	return uc
}

func circleTrace() []geom.Point {
	pts := make([]geom.Point, 0, 36)
	for i := 0; i < 36; i++ {
		a := 2 * math.Pi * float64(i) / 36
		pts = append(pts, geom.Point{X: 150 + 100*math.Cos(a), Y: 150 + 100*math.Sin(a)})
	}
	return pts
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// TestSubmitCircleOncePerDay 当日只许提交一次
func TestSubmitCircleOncePerDay(t *testing.T) {
	uc := newTestUseCase(t, nil)
	ctx := context.Background()

	res, err := uc.SubmitCircle(ctx, "p1", circleTrace(), now)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if res.Record.Score <= 0 || res.Record.Outcome != gate.OutcomeDone {
		t.Fatalf("结果不符: %+v", res.Record)
	}

	if _, err = uc.SubmitCircle(ctx, "p1", circleTrace(), now); !gate.IsAlreadyAttempted(err) {
		t.Fatalf("二次提交期望被拒，实际 %v", err)
	}

	state, err := uc.CheckLock(ctx, "p1", circle.Slug, now)
	if err != nil || !state.Locked {
		t.Fatalf("提交后应锁定: %+v, %v", state, err)
	}
}

// TestSubmitCircleTooFewPoints 采样不足按 0 分 fail 落记录
func TestSubmitCircleTooFewPoints(t *testing.T) {
	uc := newTestUseCase(t, nil)

	res, err := uc.SubmitCircle(context.Background(), "p1", circleTrace()[:3], now)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if res.Record.Score != 0 || res.Record.Outcome != gate.OutcomeFail {
		t.Fatalf("无效手势期望 0 分 fail: %+v", res.Record)
	}
}

// TestShapeRoundTrip 开局拿目标，原样画回在确定性模式下得满分
func TestShapeRoundTrip(t *testing.T) {
	uc := newTestUseCase(t, &conf.Game{ShapeRandomY: boolPtr(false)})
	ctx := context.Background()

	target, err := uc.StartShape(ctx, "p1", now)
	if err != nil {
		t.Fatalf("开局失败: %v", err)
	}
	if len(target) == 0 {
		t.Fatalf("目标折线为空")
	}

	res, err := uc.SubmitShape(ctx, "p1", target, now)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if res.Record.Score < 0 || res.Record.Score > 100 {
		t.Fatalf("分数越界: %d", res.Record.Score)
	}

	// 提交后目标被清掉，再提交要先重新开局
	if _, err = uc.SubmitShape(ctx, "p1", target, now); errors.Reason(err) != "SHAPE_NOT_STARTED" {
		t.Fatalf("期望 SHAPE_NOT_STARTED，实际 %v", err)
	}
	// 而当日已攻略，开局也被拒
	if _, err = uc.StartShape(ctx, "p1", now); !gate.IsAlreadyAttempted(err) {
		t.Fatalf("当日再开局期望被拒，实际 %v", err)
	}
}

// TestSubmitShapeWithoutStart 未开局直接提交被拒
func TestSubmitShapeWithoutStart(t *testing.T) {
	uc := newTestUseCase(t, nil)
	if _, err := uc.SubmitShape(context.Background(), "p1", circleTrace(), now); errors.Reason(err) != "SHAPE_NOT_STARTED" {
		t.Fatalf("期望 SHAPE_NOT_STARTED，实际 %v", err)
	}
}

// TestBallFlow 开局、观察、点击、落记录、会话回收
func TestBallFlow(t *testing.T) {
	uc := newTestUseCase(t, nil)
	ctx := context.Background()

	sess, err := uc.StartBall(ctx, "p1", now)
	if err != nil {
		t.Fatalf("开局失败: %v", err)
	}

	view, err := uc.ViewBall(sess.ID, now.Add(160*time.Millisecond))
	if err != nil || !view.Visible {
		t.Fatalf("前 2s 内球应可见: %+v, %v", view, err)
	}

	res, err := uc.TapBall(ctx, sess.ID, 0, 0, now.Add(200*time.Millisecond))
	if err != nil {
		t.Fatalf("点击失败: %v", err)
	}
	if res.Hit || res.Record.Score != 0 || res.Record.Outcome != gate.OutcomeLose {
		t.Fatalf("角落点击期望未命中: %+v", res)
	}

	if _, err = uc.ViewBall(sess.ID, now.Add(time.Second)); errors.Reason(err) != "SESSION_NOT_FOUND" {
		t.Fatalf("判定后会话应被回收，实际 %v", err)
	}
	if _, err = uc.StartBall(ctx, "p1", now); !gate.IsAlreadyAttempted(err) {
		t.Fatalf("当日再开局期望被拒，实际 %v", err)
	}
}

// TestOppositeTally 答案规整后进聚合统计，返回同选占比
func TestOppositeTally(t *testing.T) {
	uc := newTestUseCase(t, nil)
	ctx := context.Background()

	res, err := uc.SubmitOpposite(ctx, "p1", "  SuNNy ", now)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if res.Answer != "sunny" || res.SamePct != 100 {
		t.Fatalf("首票期望 sunny/100%%: %+v", res)
	}

	if _, err = uc.SubmitOpposite(ctx, "p1", "rainy", now); !gate.IsAlreadyAttempted(err) {
		t.Fatalf("当日二次提交期望被拒，实际 %v", err)
	}
	res, err = uc.SubmitOpposite(ctx, "p2", "rainy", now)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if res.SamePct != 50 {
		t.Fatalf("两票分歧期望 50%%，实际 %v", res.SamePct)
	}
}

// TestOppositeEmptyAnswer 空答案直接拒绝，不消耗当日机会
func TestOppositeEmptyAnswer(t *testing.T) {
	uc := newTestUseCase(t, nil)
	ctx := context.Background()

	if _, err := uc.SubmitOpposite(ctx, "p1", "   ", now); errors.Reason(err) != "ANSWER_EMPTY" {
		t.Fatalf("期望 ANSWER_EMPTY，实际 %v", err)
	}
	if _, err := uc.SubmitOpposite(ctx, "p1", "ok", now); err != nil {
		t.Fatalf("被拒后的正常提交不应失败: %v", err)
	}
}

// TestResetDisabled 未开 dev_reset 时重置被拒
func TestResetDisabled(t *testing.T) {
	uc := newTestUseCase(t, nil)
	if err := uc.Reset(context.Background(), "p1", circle.Slug, now); errors.Reason(err) != "RESET_DISABLED" {
		t.Fatalf("期望 RESET_DISABLED，实际 %v", err)
	}
}

// TestResetEnabled 开启后重置解锁当日
func TestResetEnabled(t *testing.T) {
	uc := newTestUseCase(t, &conf.Game{DevReset: true})
	ctx := context.Background()

	if _, err := uc.SubmitCircle(ctx, "p1", circleTrace(), now); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if err := uc.Reset(ctx, "p1", circle.Slug, now); err != nil {
		t.Fatalf("重置失败: %v", err)
	}
	if _, err := uc.SubmitCircle(ctx, "p1", circleTrace(), now); err != nil {
		t.Fatalf("重置后提交失败: %v", err)
	}
}
