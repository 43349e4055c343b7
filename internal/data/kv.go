package data

import (
	"context"
	"time"
)

// KVEntry 玩家本地键值对，权威存储（对局锁、当日分数等）
type KVEntry struct {
	K         string `xorm:"pk varchar(191) 'k'"`
	V         string `xorm:"varchar(255) 'v'"`
	UpdatedAt int64  `xorm:"'updated_at'"`
}

func (KVEntry) TableName() string { return "kv_store" }

// fullKey 键按玩家隔离
func fullKey(playerID, key string) string {
	return playerID + ":" + key
}

func (r *dataRepo) Get(ctx context.Context, playerID, key string) (string, bool, error) {
	var row KVEntry
	has, err := r.data.db.Context(ctx).Where("k = ?", fullKey(playerID, key)).Get(&row)
	if err != nil {
		return "", false, err
	}
	if !has {
		return "", false, nil
	}
	return row.V, true, nil
}

func (r *dataRepo) Set(ctx context.Context, playerID, key, value string) error {
	// upsert，键冲突时覆盖
	_, err := r.data.db.Context(ctx).Exec(
		"INSERT INTO kv_store (k, v, updated_at) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = VALUES(updated_at)",
		fullKey(playerID, key), value, time.Now().Unix(),
	)
	return err
}

func (r *dataRepo) Remove(ctx context.Context, playerID, key string) error {
	_, err := r.data.db.Context(ctx).Where("k = ?", fullKey(playerID, key)).Delete(new(KVEntry))
	return err
}
