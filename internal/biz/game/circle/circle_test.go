package circle

import (
	"math"
	"testing"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
)

func circlePoints(cx, cy, r float64, n int) []geom.Point {
	pts := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, geom.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

// TestScorePerfectCircle 标准圆应得满分，与半径无关
func TestScorePerfectCircle(t *testing.T) {
	for _, r := range []float64{30, 100, 140} {
		if got := Score(circlePoints(150, 150, r, 36)); got != 100 {
			t.Fatalf("半径 %v 的标准圆期望 100 分，实际 %d", r, got)
		}
	}
}

// TestScoreTooFewPoints 采样不足直接 0 分
func TestScoreTooFewPoints(t *testing.T) {
	if got := Score(circlePoints(150, 150, 100, MinPoints-1)); got != 0 {
		t.Fatalf("采样不足期望 0 分，实际 %d", got)
	}
	if got := Score(nil); got != 0 {
		t.Fatalf("空轨迹期望 0 分，实际 %d", got)
	}
}

// TestScoreTranslationInvariant 评分只看形状，不看画在画布哪里
func TestScoreTranslationInvariant(t *testing.T) {
	a := Score(circlePoints(150, 150, 80, 36))
	b := Score(circlePoints(60, 220, 80, 36))
	if a != b {
		t.Fatalf("平移后分数应一致: %d != %d", a, b)
	}
}

// TestScoreSquareBelowCircle 方形轨迹半径波动大，分数应低于满分但非 0
func TestScoreSquareBelowCircle(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 10; i++ {
		f := float64(i) / 10 * 200
		pts = append(pts,
			geom.Point{X: 50 + f, Y: 50},
			geom.Point{X: 250, Y: 50 + f},
			geom.Point{X: 250 - f, Y: 250},
			geom.Point{X: 50, Y: 250 - f},
		)
	}
	got := Score(pts)
	if got >= 100 || got <= 0 {
		t.Fatalf("方形轨迹期望 (0,100) 区间，实际 %d", got)
	}
}
