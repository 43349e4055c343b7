package ball

import (
	"testing"
	"time"
)

// TestSimTapHit 对照真实球位点击必命中
func TestSimTapHit(t *testing.T) {
	s := NewSim()
	s.Advance(10)
	v := s.View()
	if !v.Visible {
		t.Fatalf("前 %dms 球应可见", HideDelayMS)
	}
	hit, err := s.Tap(v.X, v.Y)
	if err != nil {
		t.Fatalf("首次点击不应报错: %v", err)
	}
	if !hit {
		t.Fatalf("点在球心上期望命中")
	}
}

// TestSimTapMiss 点远处未命中，且重复点击报错
func TestSimTapMiss(t *testing.T) {
	s := NewSim()
	s.Advance(5)
	hit, err := s.Tap(0, 0)
	if err != nil {
		t.Fatalf("首次点击不应报错: %v", err)
	}
	if hit {
		t.Fatalf("点在角落不应命中")
	}
	if _, err = s.Tap(0, 0); err == nil {
		t.Fatalf("重复点击期望报错")
	}
}

// TestSimNoRestart 点击后模拟终止，推进不再生效
func TestSimNoRestart(t *testing.T) {
	s := NewSim()
	s.Advance(3)
	if _, err := s.Tap(0, 0); err != nil {
		t.Fatalf("点击失败: %v", err)
	}
	frame := s.View().Frame
	s.Advance(10)
	if got := s.View().Frame; got != frame {
		t.Fatalf("终止后帧号不应推进: %d -> %d", frame, got)
	}
	if !s.View().Finished {
		t.Fatalf("终止后 Finished 应为 true")
	}
}

// TestSimHideAfterDelay 超过隐藏时限后不再暴露真实坐标
func TestSimHideAfterDelay(t *testing.T) {
	s := NewSim()
	s.Advance(HideDelayMS / FrameMS)
	v := s.View()
	if v.Visible {
		t.Fatalf("第 %d 帧后球应隐藏", HideDelayMS/FrameMS)
	}
	if v.X != 0 || v.Y != 0 {
		t.Fatalf("隐藏后不应暴露坐标: (%v, %v)", v.X, v.Y)
	}
}

// TestSimWallLit 撞墙点亮，超时熄灭
func TestSimWallLit(t *testing.T) {
	s := NewSim()
	// 初速 (1.5, 2)，y 先到达下边界
	for i := 0; i < 1000; i++ {
		s.Step()
		if s.View().LitWall != WallNone {
			break
		}
	}
	if got := s.View().LitWall; got != WallBottom {
		t.Fatalf("首次撞墙期望 %q，实际 %q", WallBottom, got)
	}
	s.Advance(WallLitMS/FrameMS + 1)
	if got := s.View().LitWall; got != WallNone {
		t.Fatalf("点亮超时后应熄灭，实际 %q", got)
	}
}

// TestSessionAdvanceByTime 会话按真实时间折算帧推进
func TestSessionAdvanceByTime(t *testing.T) {
	now := time.Now()
	sess := NewSession("p1", now)
	v := sess.AdvanceTo(now.Add(160 * time.Millisecond))
	if v.Frame != 160/FrameMS {
		t.Fatalf("160ms 期望 %d 帧，实际 %d", 160/FrameMS, v.Frame)
	}
	// 不足一帧的余量不丢进度
	v = sess.AdvanceTo(now.Add(168 * time.Millisecond))
	if v.Frame != 160/FrameMS {
		t.Fatalf("不足一帧不应推进，实际 %d", v.Frame)
	}
}

// TestSessionPool 同玩家重开顶掉旧会话
func TestSessionPool(t *testing.T) {
	p := NewSessionPool()
	now := time.Now()
	a := p.Open("p1", now)
	b := p.Open("p1", now)
	if a.ID == b.ID {
		t.Fatalf("重开应产生新会话")
	}
	if _, ok := p.Get(a.ID); ok {
		t.Fatalf("旧会话应被顶掉")
	}
	if !a.sim.Stopped() {
		t.Fatalf("被顶掉的会话应终止")
	}
	if got := p.Count(); got != 1 {
		t.Fatalf("会话数期望 1，实际 %d", got)
	}
	p.Close(b.ID)
	if got := p.Count(); got != 0 {
		t.Fatalf("关闭后会话数期望 0，实际 %d", got)
	}
}
