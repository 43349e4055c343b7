package biz

import (
	"context"
	"math/rand"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/circle"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/shape"
	"github.com/henryforrest/The-Cube-Game/internal/biz/gate"

	"github.com/go-kratos/kratos/v2/errors"
)

// DrawResult 画图类玩法的提交结果
type DrawResult struct {
	Record  gate.AttemptRecord
	Perfect bool
}

// SubmitCircle 画圆评分并落当日记录。采样不足按 0 分 Fail 落记录，不报错
func (uc *UseCase) SubmitCircle(ctx context.Context, playerID string, points []geom.Point, now time.Time) (DrawResult, error) {
	gm, _ := uc.gamePool.Get(circle.Slug)

	score := circle.Score(points)
	outcome := gate.OutcomeDone
	if len(points) < circle.MinPoints {
		outcome = gate.OutcomeFail
	}
	return uc.commitDraw(ctx, playerID, gm, now, score, outcome)
}

// StartShape 开一局形状记忆：生成目标折线并记住，提交时用它评分。
// 当日已攻略直接拒绝，不浪费目标
func (uc *UseCase) StartShape(ctx context.Context, playerID string, now time.Time) ([]geom.Point, error) {
	gm, _ := uc.gamePool.Get(shape.Slug)

	state, err := uc.gate.CheckLock(ctx, playerID, gm, now)
	if err != nil {
		return nil, err
	}
	if state.Locked {
		return nil, errors.Newf(409, gate.ReasonAlreadyAttempted,
			"player %s already attempted %s today", playerID, shape.Slug)
	}

	var target []geom.Point
	uc.withRand(func(r *rand.Rand) {
		target = shape.Generate(r)
	})

	uc.shapeMu.Lock()
	uc.shapeTargets[playerID] = target
	uc.shapeMu.Unlock()
	return target, nil
}

// SubmitShape 凭记忆重画的轨迹与本局目标比对评分。
// 未 StartShape 过（无目标）拒绝；采样不足按 0 分 Fail 落记录
func (uc *UseCase) SubmitShape(ctx context.Context, playerID string, points []geom.Point, now time.Time) (DrawResult, error) {
	gm, _ := uc.gamePool.Get(shape.Slug)

	uc.shapeMu.Lock()
	target, ok := uc.shapeTargets[playerID]
	uc.shapeMu.Unlock()
	if !ok {
		return DrawResult{}, errors.New(400, "SHAPE_NOT_STARTED", "no shape round in progress")
	}

	var samples []geom.Point
	randomY := uc.c.ShapeRandomYEnabled()
	uc.withRand(func(r *rand.Rand) {
		samples = shape.SampleTarget(target, randomY, r)
	})

	score := shape.Score(points, samples)
	outcome := gate.OutcomeDone
	if len(points) < shape.MinPoints {
		outcome = gate.OutcomeFail
	}

	res, err := uc.commitDraw(ctx, playerID, gm, now, score, outcome)
	if err != nil {
		return DrawResult{}, err
	}
	uc.clearShapeTarget(playerID)
	return res, nil
}

func (uc *UseCase) commitDraw(ctx context.Context, playerID string, gm base.IGame, now time.Time, score int, outcome gate.Outcome) (DrawResult, error) {
	rec, err := uc.commit(ctx, playerID, gm, now, score, outcome)
	if err != nil {
		return DrawResult{}, err
	}
	return DrawResult{Record: rec, Perfect: score >= base.PerfectScore}, nil
}

func (uc *UseCase) clearShapeTarget(playerID string) {
	uc.shapeMu.Lock()
	delete(uc.shapeTargets, playerID)
	uc.shapeMu.Unlock()
}
