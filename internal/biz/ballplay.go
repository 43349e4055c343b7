package biz

import (
	"context"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/ball"
	"github.com/henryforrest/The-Cube-Game/internal/biz/gate"

	"github.com/go-kratos/kratos/v2/errors"
)

// BallResult 隐形球点击判定结果
type BallResult struct {
	Record gate.AttemptRecord
	Hit    bool
}

// StartBall 开一局隐形球会话。当日已攻略拒绝开局；
// 同玩家重开会顶掉旧会话（旧模拟终止，不可恢复）
func (uc *UseCase) StartBall(ctx context.Context, playerID string, now time.Time) (*ball.Session, error) {
	gm, _ := uc.gamePool.Get(ball.Slug)

	state, err := uc.gate.CheckLock(ctx, playerID, gm, now)
	if err != nil {
		return nil, err
	}
	if state.Locked {
		return nil, errors.Newf(409, gate.ReasonAlreadyAttempted,
			"player %s already attempted %s today", playerID, ball.Slug)
	}

	s := uc.ballPool.Open(playerID, now)
	mBallSessions.Set(float64(uc.ballPool.Count()))
	return s, nil
}

// ViewBall 把会话推进到 now 并返回渲染状态
func (uc *UseCase) ViewBall(sessionID string, now time.Time) (ball.View, error) {
	s, ok := uc.ballPool.Get(sessionID)
	if !ok {
		return ball.View{}, errors.Newf(404, "SESSION_NOT_FOUND", "ball session not found: %s", sessionID)
	}
	return s.AdvanceTo(now), nil
}

// TapBall 单次点击：对照当前真实球位判定 Win/Lose 并落当日记录。
// 提交后会话终止，同一会话不再接受点击
func (uc *UseCase) TapBall(ctx context.Context, sessionID string, x, y float64, now time.Time) (BallResult, error) {
	s, ok := uc.ballPool.Get(sessionID)
	if !ok {
		return BallResult{}, errors.Newf(404, "SESSION_NOT_FOUND", "ball session not found: %s", sessionID)
	}

	hit, err := s.Tap(x, y, now)
	if err != nil {
		return BallResult{}, errors.New(409, "BALL_ALREADY_TAPPED", err.Error())
	}

	score := 0
	outcome := gate.OutcomeLose
	if hit {
		score = 100
		outcome = gate.OutcomeWin
	}

	gm, _ := uc.gamePool.Get(ball.Slug)
	rec, err := uc.commit(ctx, s.PlayerID, gm, now, score, outcome)

	// 无论提交结果如何，本局都已终止
	uc.ballPool.Close(sessionID)
	mBallSessions.Set(float64(uc.ballPool.Count()))

	if err != nil {
		return BallResult{}, err
	}
	return BallResult{Record: rec, Hit: hit}, nil
}
