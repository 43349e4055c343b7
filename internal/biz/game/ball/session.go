package ball

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session 服务端持有的一局隐形球。按真实时间推进模拟，
// 保证点击判定对照的是当前真实位置
type Session struct {
	ID       string
	PlayerID string

	mu      sync.Mutex
	sim     *Sim
	lastAdv time.Time
}

// NewSession 开一局，球从中心起步
func NewSession(playerID string, now time.Time) *Session {
	return &Session{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		sim:      NewSim(),
		lastAdv:  now,
	}
}

// AdvanceTo 把模拟推进到 now，按 FrameMS 折算帧数
func (s *Session) AdvanceTo(now time.Time) View {
	s.mu.Lock()
	elapsed := now.Sub(s.lastAdv)
	frames := int64(elapsed / (FrameMS * time.Millisecond))
	if frames > 0 {
		s.lastAdv = s.lastAdv.Add(time.Duration(frames) * FrameMS * time.Millisecond)
	}
	sim := s.sim
	s.mu.Unlock()

	if frames > 0 {
		sim.Advance(frames)
	}
	return sim.View()
}

// Tap 推进到 now 后判定点击
func (s *Session) Tap(x, y float64, now time.Time) (hit bool, err error) {
	s.AdvanceTo(now)
	return s.sim.Tap(x, y)
}

// Stop 终止本局模拟
func (s *Session) Stop() {
	s.sim.Stop()
}

// SessionPool 会话池。每个玩家同时最多一局，重开会顶掉旧局
type SessionPool struct {
	mu       sync.RWMutex
	byID     map[string]*Session
	byPlayer map[string]*Session
}

func NewSessionPool() *SessionPool {
	return &SessionPool{
		byID:     make(map[string]*Session),
		byPlayer: make(map[string]*Session),
	}
}

// Open 为玩家开一局。已有进行中的旧局会被终止并移除
func (p *SessionPool) Open(playerID string, now time.Time) *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if old, ok := p.byPlayer[playerID]; ok {
		old.Stop()
		delete(p.byID, old.ID)
	}
	s := NewSession(playerID, now)
	p.byID[s.ID] = s
	p.byPlayer[playerID] = s
	return s
}

// Get 按会话 ID 获取
func (p *SessionPool) Get(id string) (*Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.byID[id]
	return s, ok
}

// Close 结束会话并移除
func (p *SessionPool) Close(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	if !ok {
		return
	}
	s.Stop()
	delete(p.byID, id)
	if cur, ok := p.byPlayer[s.PlayerID]; ok && cur.ID == id {
		delete(p.byPlayer, s.PlayerID)
	}
}

// Count 当前会话数
func (p *SessionPool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byID)
}
