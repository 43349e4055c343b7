package base

// IGame 小游戏接口，注册到游戏池的每个玩法都要实现
type IGame interface {
	Slug() string
	Name() string
	// Collection 远端镜像与排行榜所在集合，空串表示该玩法不入排行榜
	Collection() string
	// AttemptKey 当日攻略锁在本地存储中的键。历史原因各玩法键名不统一，
	// 默认 "<slug>Attempt"，个别玩法覆写
	AttemptKey(day string) string
	// ScoreKey 当日分数键
	ScoreKey(day string) string
}

// PerfectScore 达到该分数视为满分表现，触发庆祝反馈
const PerfectScore = 95

// Default 基础玩法实现，提供默认键名
type Default struct {
	slug       string
	name       string
	collection string
}

// NewBaseGame 创建基础玩法实例
func NewBaseGame(slug, name, collection string) *Default {
	return &Default{
		slug:       slug,
		name:       name,
		collection: collection,
	}
}

func (g *Default) Slug() string {
	return g.slug
}

func (g *Default) Name() string {
	return g.name
}

func (g *Default) Collection() string {
	return g.collection
}

func (g *Default) AttemptKey(string) string {
	return g.slug + "Attempt"
}

func (g *Default) ScoreKey(day string) string {
	return g.slug + "-score-" + day
}
