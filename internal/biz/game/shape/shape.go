// Package shape 形状记忆玩法：生成目标折线并为凭记忆重画的轨迹评分
package shape

import (
	"math"
	"math/rand"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
)

const Slug = "shape"
const Name = "Shape Memory"

// MinPoints 采样点不足视为无效手势，直接 0 分
const MinPoints = 5

// TargetSamples 目标折线固定采样点数
const TargetSamples = 40

// RefCanvasSide 评分公式里的参考画布边长。与实际画布尺寸解耦，
// 只作为距离归一化基准，改动会改变所有历史分数
const RefCanvasSide = 300

// ShowDuration 目标形状展示时长（毫秒），到时隐藏，由宿主层执行
const ShowDurationMS = 3000

// 折线生成参数，见 Generate
const (
	genSegments   = 6
	genStartBase  = 50
	genStartRange = 200
	genStepRange  = 160
	genStepOffset = 80
)

var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(Slug, Name, "shapeGame")}
}

// Generate 随机生成一条 6 段折线作为目标形状，一局内不变
func Generate(rng *rand.Rand) []geom.Point {
	pts := make([]geom.Point, 0, genSegments+1)
	x := genStartBase + rng.Float64()*genStartRange
	y := genStartBase + rng.Float64()*genStartRange
	pts = append(pts, geom.Point{X: x, Y: y})
	for i := 0; i < genSegments; i++ {
		x += rng.Float64()*genStepRange - genStepOffset
		y += rng.Float64()*genStepRange - genStepOffset
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	return pts
}

// SampleTarget 在目标形状包围盒内取 TargetSamples 个比较点。
// x 按索引在包围盒宽度上均匀插值；y 在 randomY 开启时每次取随机值，
// 这会让同一输入的重复评分产生抖动，且比较的并不是玩家看到的那条线。
// 疑似原实现缺陷，但分数方差已成为玩法的一部分，默认原样保留；
// randomY 关闭时 y 与 x 一样按索引插值，评分退化为确定性
func SampleTarget(target []geom.Point, randomY bool, rng *rand.Rand) []geom.Point {
	b := geom.Bounds(target)
	out := make([]geom.Point, 0, TargetSamples)
	for i := 0; i < TargetSamples; i++ {
		frac := float64(i) / float64(TargetSamples)
		y := b.MinY + frac*b.Height()
		if randomY {
			y = b.MinY + rng.Float64()*b.Height()
		}
		out = append(out, geom.Point{
			X: b.MinX + frac*b.Width(),
			Y: y,
		})
	}
	return out
}

// Score 按索引逐对比较用户轨迹与目标采样点，平均距离对参考画布
// 对角线归一化后折算为 0-100
func Score(user, targetSamples []geom.Point) int {
	if len(user) < MinPoints {
		return 0
	}

	n := len(user)
	if len(targetSamples) < n {
		n = len(targetSamples)
	}
	if n == 0 {
		return 0
	}

	var total float64
	for i := 0; i < n; i++ {
		total += geom.Dist(user[i], targetSamples[i])
	}
	avgDist := total / float64(n)

	diag := math.Hypot(RefCanvasSide, RefCanvasSide)
	score := 100 - avgDist/diag*100
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
