package thisorthat

import (
	"testing"
	"time"
)

// TestQuestionOfDayStable 同一自然日内问题不变，按天轮换
func TestQuestionOfDayStable(t *testing.T) {
	d := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	q := QuestionOfDay(d)
	if q != QuestionOfDay(d.Add(12*time.Hour)) {
		t.Fatalf("同日问题应一致")
	}
	if q.A != "Marvel 🦸" || q.B != "DC 🦇" {
		t.Fatalf("2024-01-01 的问题不符: %+v", q)
	}
	if q == QuestionOfDay(d.AddDate(0, 0, 1)) {
		t.Fatalf("相邻两日问题不应相同")
	}
}

// TestValidChoice 只接受当日问题的两个选项
func TestValidChoice(t *testing.T) {
	q := Question{A: "Coffee ☕", B: "Tea 🍵"}
	if !ValidChoice(q, q.A) || !ValidChoice(q, q.B) {
		t.Fatalf("两个选项都应合法")
	}
	if ValidChoice(q, "Juice") {
		t.Fatalf("题面之外的选项不应合法")
	}
	if ValidChoice(q, "coffee ☕") {
		t.Fatalf("选项比较区分大小写")
	}
}
