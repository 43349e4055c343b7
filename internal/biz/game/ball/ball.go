// Package ball 隐形球反应玩法：匀速弹跳小球的逐帧模拟与点击判定
package ball

import (
	"fmt"
	"math"
	"sync"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
)

const Slug = "ball"
const Name = "Hidden Ball"

const (
	// BoxSize 正方形活动区边长
	BoxSize = 250
	// Radius 球半径，同时是命中判定半径
	Radius = 12
	// 初速度，水平 1.5 竖直 2，反弹只翻转对应分量
	VelocityX = 1.5
	VelocityY = 2
	// FrameMS 单帧时长，宿主渲染循环每帧调用一次 Step
	FrameMS = 16
	// HideDelayMS 开局后球保持可见的时长，之后只闪烁不显示真实位置
	HideDelayMS = 2000
	// WallLitMS 撞墙后对应墙体点亮的时长
	WallLitMS = 200
)

// Wall 被点亮的墙
type Wall string

const (
	WallNone   Wall = ""
	WallLeft   Wall = "left"
	WallRight  Wall = "right"
	WallTop    Wall = "top"
	WallBottom Wall = "bottom"
)

var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(Slug, Name, "ballGame")}
}

// AttemptKey 沿用早期版本的键名
func (*Game) AttemptKey(string) string {
	return "hiddenBallAttempt"
}

// View 提供给渲染层的状态。球隐藏后不暴露真实坐标
type View struct {
	Visible  bool    `json:"visible"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	LitWall  Wall    `json:"lit_wall,omitempty"`
	Frame    int64   `json:"frame"`
	Finished bool    `json:"finished"`
}

// Sim 小球模拟器。Step 由宿主按帧推进；Tap 永远对照当前真实位置判定，
// 与渲染层最后一次画出的位置无关
type Sim struct {
	mu sync.Mutex

	x, y     float64
	vx, vy   float64
	frame    int64
	litWall  Wall
	litUntil int64 // 帧号，含
	stopped  bool
}

// NewSim 创建居中起步的模拟器
func NewSim() *Sim {
	return &Sim{
		x:  BoxSize / 2,
		y:  BoxSize / 2,
		vx: VelocityX,
		vy: VelocityY,
	}
}

// Step 推进一帧。已停止后调用是 no-op，不允许重启
func (s *Sim) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step()
}

// Advance 推进 n 帧
func (s *Sim) Advance(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := int64(0); i < n && !s.stopped; i++ {
		s.step()
	}
}

func (s *Sim) step() {
	if s.stopped {
		return
	}
	s.frame++
	s.x += s.vx
	s.y += s.vy

	lit := WallNone
	if s.x <= Radius || s.x >= BoxSize-Radius {
		s.vx = -s.vx
		if s.x <= Radius {
			lit = WallLeft
		} else {
			lit = WallRight
		}
	}
	if s.y <= Radius || s.y >= BoxSize-Radius {
		s.vy = -s.vy
		if s.y <= Radius {
			lit = WallTop
		} else {
			lit = WallBottom
		}
	}
	if lit != WallNone {
		s.litWall = lit
		s.litUntil = s.frame + WallLitMS/FrameMS
	}
	if s.litWall != WallNone && s.frame > s.litUntil {
		s.litWall = WallNone
	}
}

// View 当前渲染状态
func (s *Sim) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Frame: s.frame, Finished: s.stopped}
	if s.litWall != WallNone && s.frame <= s.litUntil {
		v.LitWall = s.litWall
	}
	if s.frame*FrameMS < HideDelayMS {
		v.Visible = true
		v.X, v.Y = s.x, s.y
	}
	return v
}

// Tap 单次点击判定：与真实球心距离 ≤ Radius 即命中。
// 判定后模拟停止，重复点击报错
func (s *Sim) Tap(x, y float64) (hit bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false, fmt.Errorf("ball already tapped")
	}
	s.stopped = true
	return math.Hypot(x-s.x, y-s.y) <= Radius, nil
}

// Stop 终止模拟（锁定或放弃时），终止后不可恢复
func (s *Sim) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// Stopped 是否已终止
func (s *Sim) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
