package game

import (
	"sort"
	"testing"
)

// TestPoolRegistry 注册的五个玩法都能取到，列表按 slug 升序
func TestPoolRegistry(t *testing.T) {
	p := NewPool()
	for _, slug := range []string{"circle", "shape", "ball", "opposite", "thisorthat"} {
		g, ok := p.Get(slug)
		if !ok {
			t.Fatalf("玩法 %s 未注册", slug)
		}
		if g.Slug() != slug {
			t.Fatalf("slug 不符: %s != %s", g.Slug(), slug)
		}
	}

	list := p.List()
	if len(list) != len(gameInstances) {
		t.Fatalf("列表长度期望 %d，实际 %d", len(gameInstances), len(list))
	}
	if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Slug() < list[j].Slug() }) {
		t.Fatalf("列表应按 slug 升序")
	}
}

// TestHasLeaderboard 画圆/形状/隐形球入榜，投票类不入
func TestHasLeaderboard(t *testing.T) {
	p := NewPool()
	for slug, want := range map[string]bool{
		"circle":     true,
		"shape":      true,
		"ball":       true,
		"opposite":   false,
		"thisorthat": false,
	} {
		if got := p.HasLeaderboard(slug); got != want {
			t.Fatalf("%s 入榜期望 %v，实际 %v", slug, want, got)
		}
	}
	if p.HasLeaderboard("nope") {
		t.Fatalf("未注册玩法不应入榜")
	}
}

// TestAttemptKeys 各玩法的历史键名不统一，固定住防止误改
func TestAttemptKeys(t *testing.T) {
	p := NewPool()
	day := "2025-06-01"
	for slug, want := range map[string]string{
		"circle":     "circle-last-played",
		"shape":      "shapeAttempt",
		"ball":       "hiddenBallAttempt",
		"opposite":   "opposite-2025-06-01",
		"thisorthat": "thisorthat-2025-06-01",
	} {
		g, _ := p.Get(slug)
		if got := g.AttemptKey(day); got != want {
			t.Fatalf("%s 锁键期望 %q，实际 %q", slug, want, got)
		}
		if got := g.ScoreKey(day); got != slug+"-score-"+day {
			t.Fatalf("%s 分数键不符: %q", slug, got)
		}
	}
}
