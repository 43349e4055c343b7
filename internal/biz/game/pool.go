package game

import (
	"sort"
	"sync"

	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
)

type Pool struct {
	mu     sync.RWMutex
	bySlug map[string]base.IGame
	list   []base.IGame
}

func NewPool() *Pool {
	p := &Pool{
		bySlug: make(map[string]base.IGame),
		list:   make([]base.IGame, 0, len(gameInstances)),
	}
	for _, g := range gameInstances {
		p.bySlug[g.Slug()] = g
		p.list = append(p.list, g)
	}
	sort.Slice(p.list, func(i, j int) bool {
		return p.list[i].Slug() < p.list[j].Slug()
	})
	return p
}

func (p *Pool) Get(slug string) (base.IGame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.bySlug[slug]
	return g, ok
}

func (p *Pool) List() []base.IGame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cpy := append([]base.IGame{}, p.list...)
	return cpy
}

// HasLeaderboard 该玩法是否入排行榜（由 Collection 是否为空决定）
func (p *Pool) HasLeaderboard(slug string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.bySlug[slug]
	return ok && g != nil && g.Collection() != ""
}
