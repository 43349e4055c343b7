// Package thisorthat 二选一投票玩法
package thisorthat

import (
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
)

const Slug = "thisorthat"
const Name = "This or That"

// Question 当日问题的两个选项
type Question struct {
	A string `json:"a"`
	B string `json:"b"`
}

// questions 顺序即轮换顺序
var questions = []Question{
	{A: "Pizza 🍕", B: "Burger 🍔"},
	{A: "Coffee ☕", B: "Tea 🍵"},
	{A: "Beach 🏖️", B: "Mountains 🏔️"},
	{A: "Marvel 🦸", B: "DC 🦇"},
	{A: "Cats 🐱", B: "Dogs 🐶"},
	{A: "Sunrise 🌅", B: "Sunset 🌇"},
	{A: "Texting 💬", B: "Calling 📞"},
	{A: "Sweet 🍫", B: "Savory 🧂"},
	{A: "Early bird 🌅", B: "Night owl 🌙"},
	{A: "Books 📚", B: "Movies 🎬"},
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

// QuestionOfDay 当日问题：epoch 天数对题库长度取模
func QuestionOfDay(now time.Time) Question {
	days := now.UnixMilli() / (1000 * 60 * 60 * 24)
	return questions[int(days%int64(len(questions)))]
}

// ValidChoice 选项必须是当日问题二者之一
func ValidChoice(q Question, choice string) bool {
	return choice == q.A || choice == q.B
}
