// Package opposite 每日反义词玩法：给定当日单词，玩家提交心目中的反义词，
// 答案进全局聚合统计
package opposite

import (
	"strings"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
)

const Slug = "opposite"
const Name = "Opposite"

// words 词库顺序即轮换顺序，改动会打乱当日单词
var words = []string{
	"pizza",
	"rain",
	"music",
	"cloud",
	"friendship",
	"coffee",
	"robot",
	"mountain",
	"mirror",
	"dog",
}

var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(Slug, Name, "")}
}

// AttemptKey 按日期区分，键本身即当日锁
func (*Game) AttemptKey(day string) string {
	return Slug + "-" + day
}

// WordOfDay 当日单词：epoch 天数对词库长度取模，所有客户端一致
func WordOfDay(now time.Time) string {
	days := now.UnixMilli() / (1000 * 60 * 60 * 24)
	return words[int(days%int64(len(words)))]
}

// Normalize 答案入统计前的归一化，保证同词同键
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
