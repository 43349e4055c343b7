package game

import (
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/ball"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/base"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/circle"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/opposite"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/shape"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/thisorthat"
)

var gameInstances = []base.IGame{
	circle.New(),
	shape.New(),
	ball.New(),
	opposite.New(),
	thisorthat.New(),
}
