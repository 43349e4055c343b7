// Package circle 徒手画圆挑战的评分
package circle

import (
	"math"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
)

const Slug = "circle"
const Name = "Circle Challenge"

// MinPoints 采样点不足视为无效手势，直接 0 分
const MinPoints = 10

// PlayBoxSide 画布固定边长。评分公式不按画布尺寸归一化，
// 分数隐含依赖这个尺寸，改动会导致历史分数不可比
const PlayBoxSide = 300

var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(Slug, Name, "circleGame")}
}

// AttemptKey 沿用早期版本的键名
func (*Game) AttemptKey(string) string {
	return "circle-last-played"
}

// Score 计算画圆保真度 0-100。
// 圆心取包围盒中心而非质心，对离群点敏感，为保持与历史分数兼容不改
func Score(points []geom.Point) int {
	if len(points) < MinPoints {
		return 0
	}

	center := geom.Bounds(points).Center()

	var sum float64
	for _, p := range points {
		sum += geom.Dist(p, center)
	}
	meanRadius := sum / float64(len(points))

	var dev float64
	for _, p := range points {
		dev += math.Abs(geom.Dist(p, center) - meanRadius)
	}
	meanAbsDev := dev / float64(len(points))

	return int(math.Round(math.Max(0, 100-meanAbsDev)))
}
