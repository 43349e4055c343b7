package data

import (
	"testing"
	"time"
)

// TestKeyBuilders 各存储键的拼法固定，改动会丢历史数据
func TestKeyBuilders(t *testing.T) {
	if got := fullKey("p1", "circle-last-played"); got != "p1:circle-last-played" {
		t.Fatalf("kv 键不符: %q", got)
	}
	if got := docKey("circleGame", "p1"); got != "circleGame:p1" {
		t.Fatalf("镜像键不符: %q", got)
	}
	if got := bestKey("circleGame"); got != "circleGame:best" {
		t.Fatalf("榜单键不符: %q", got)
	}
	if got := answerKey("opposite", "2025-06-01"); got != "answers:opposite:2025-06-01" {
		t.Fatalf("统计键不符: %q", got)
	}
	if got := userKey("p1"); got != "users:p1" {
		t.Fatalf("用户键不符: %q", got)
	}
}

// TestNextMidnight 过期点为次日零点（本地时区）
func TestNextMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	if got := nextMidnight(now); !got.Equal(want) {
		t.Fatalf("次日零点期望 %v，实际 %v", want, got)
	}

	// 月末跨月
	now = time.Date(2025, 6, 30, 1, 0, 0, 0, loc)
	want = time.Date(2025, 7, 1, 0, 0, 0, 0, loc)
	if got := nextMidnight(now); !got.Equal(want) {
		t.Fatalf("跨月期望 %v，实际 %v", want, got)
	}
}
