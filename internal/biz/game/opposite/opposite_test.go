package opposite

import (
	"testing"
	"time"
)

// TestWordOfDayStable 同一自然日内单词不变
func TestWordOfDayStable(t *testing.T) {
	morning := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	if WordOfDay(morning) != WordOfDay(night) {
		t.Fatalf("同日单词应一致: %q != %q", WordOfDay(morning), WordOfDay(night))
	}
	if got := WordOfDay(morning); got != "cloud" {
		t.Fatalf("2024-01-01 的单词期望 cloud，实际 %q", got)
	}
}

// TestWordOfDayRotates 次日轮换到下一个词
func TestWordOfDayRotates(t *testing.T) {
	d := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if WordOfDay(d) == WordOfDay(d.AddDate(0, 0, 1)) {
		t.Fatalf("相邻两日单词不应相同")
	}
	// 词库长度为周期
	if WordOfDay(d) != WordOfDay(d.AddDate(0, 0, len(words))) {
		t.Fatalf("%d 天后应轮回到同一个词", len(words))
	}
}

// TestNormalize 大小写与首尾空白归一
func TestNormalize(t *testing.T) {
	if got := Normalize("  SuNNy \n"); got != "sunny" {
		t.Fatalf("归一化期望 sunny，实际 %q", got)
	}
}

// TestAttemptKeyPerDay 锁键带日期，跨日自动失效
func TestAttemptKeyPerDay(t *testing.T) {
	g := &Game{}
	if got := g.AttemptKey("2024-01-01"); got != "opposite-2024-01-01" {
		t.Fatalf("锁键期望 opposite-2024-01-01，实际 %q", got)
	}
}
