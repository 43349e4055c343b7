package biz

import (
	"context"
	"strings"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/opposite"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/thisorthat"
	"github.com/henryforrest/The-Cube-Game/internal/biz/gate"
	"github.com/henryforrest/The-Cube-Game/pkg/xgo"

	"github.com/go-kratos/kratos/v2/errors"
)

// AnswerResult 投票/答题提交结果
type AnswerResult struct {
	Record gate.AttemptRecord
	Word   string // 当日单词或题面
	Answer string
	// SamePct 选择相同答案的玩家占比（含本次）
	SamePct float64
}

// SubmitOpposite 提交当日反义词答案：落当日记录、追加结果行、进聚合统计
func (uc *UseCase) SubmitOpposite(ctx context.Context, playerID, answer string, now time.Time) (AnswerResult, error) {
	if strings.TrimSpace(answer) == "" {
		return AnswerResult{}, errors.New(400, "ANSWER_EMPTY", "answer is empty")
	}
	word := opposite.WordOfDay(now)
	return uc.submitAnswer(ctx, playerID, opposite.Slug, word, opposite.Normalize(answer), now)
}

// SubmitThisOrThat 提交当日二选一，选项必须是当日问题之一
func (uc *UseCase) SubmitThisOrThat(ctx context.Context, playerID, choice string, now time.Time) (AnswerResult, error) {
	q := thisorthat.QuestionOfDay(now)
	if !thisorthat.ValidChoice(q, choice) {
		return AnswerResult{}, errors.Newf(400, "CHOICE_INVALID", "choice %q is not today's question", choice)
	}
	return uc.submitAnswer(ctx, playerID, thisorthat.Slug, q.A+" or "+q.B, choice, now)
}

func (uc *UseCase) submitAnswer(ctx context.Context, playerID, slug, word, answer string, now time.Time) (AnswerResult, error) {
	gm, _ := uc.gamePool.Get(slug)

	rec, err := uc.commit(ctx, playerID, gm, now, 0, gate.OutcomeDone)
	if err != nil {
		return AnswerResult{}, err
	}

	day := gate.Day(now)
	if err := uc.repo.InsertResult(ctx, ResultRow{
		PlayerID: playerID,
		Game:     slug,
		Word:     word,
		Answer:   answer,
		Day:      day,
	}); err != nil {
		// 结果行是追加型明细，失败不撤销当日记录
		uc.log.Warnf("insert result failed: player=%s game=%s: %v", playerID, slug, err)
	}

	count, total, err := uc.repo.IncrAnswer(ctx, slug, day, answer)
	if err != nil {
		uc.log.Warnf("incr answer tally failed: game=%s answer=%q: %v", slug, answer, err)
		// 统计不可用时退化为只确认提交
		return AnswerResult{Record: rec, Word: word, Answer: answer, SamePct: 0}, nil
	}

	return AnswerResult{
		Record:  rec,
		Word:    word,
		Answer:  answer,
		SamePct: xgo.PctCap100(count, total),
	}, nil
}
