package data

import (
	"context"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz"

	"github.com/google/uuid"
)

// GameResult 每次作答落一行，只追加不更新
type GameResult struct {
	Id        string `xorm:"pk varchar(36) 'id'"`
	PlayerId  string `xorm:"varchar(64) index 'player_id'"`
	Game      string `xorm:"varchar(32) 'game'"`
	Word      string `xorm:"varchar(64) 'word'"`
	Answer    string `xorm:"varchar(64) 'answer'"`
	Day       string `xorm:"varchar(10) index 'day'"`
	CreatedAt int64  `xorm:"created 'created_at'"`
}

func (GameResult) TableName() string { return "game_result" }

func (r *dataRepo) InsertResult(ctx context.Context, row biz.ResultRow) error {
	_, err := r.data.db.Context(ctx).Insert(&GameResult{
		Id:        uuid.NewString(),
		PlayerId:  row.PlayerID,
		Game:      row.Game,
		Word:      row.Word,
		Answer:    row.Answer,
		Day:       row.Day,
		CreatedAt: time.Now().Unix(),
	})
	return err
}
