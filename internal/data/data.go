package data

import (
	"context"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz"
	"github.com/henryforrest/The-Cube-Game/internal/conf"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"xorm.io/xorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewRedis, NewMysql, NewDataRepo, NewS3Bucket)

type dataRepo struct {
	data *Data
	log  *log.Helper
}

func NewDataRepo(data *Data, logger log.Logger) biz.DataRepo {
	return &dataRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Data .
type Data struct {
	db       *xorm.Engine
	rdb      redis.UniversalClient
	s3Bucket *S3Bucket
}

// NewData .
func NewData(c *conf.Data, logger log.Logger, db *xorm.Engine, rdb redis.UniversalClient, s3 *S3Bucket) (*Data, func(), error) {
	l := log.NewHelper(logger)

	// 本地表结构同步（kv_store / game_result）
	if err := db.Sync2(new(KVEntry), new(GameResult)); err != nil {
		return nil, nil, errors.Newf(500, "DB_SYNC_FAILED", "failed syncing schema: %v", err)
	}

	cleanup := func() {
		l.Info("closing the data resources")
	}
	return &Data{db: db, rdb: rdb, s3Bucket: s3}, cleanup, nil
}

// NewRedis 创建并配置 Redis 客户端
func NewRedis(c *conf.Data, logger log.Logger) (redis.UniversalClient, func(), error) {
	l := log.NewHelper(logger)

	// 验证配置
	if c == nil || c.Redis == nil || len(c.Redis.Addr) == 0 {
		return nil, nil, errors.Newf(500, "REDIS_ADDR_REQUIRED", "redis address is required")
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        c.Redis.Addr,
		Password:     c.Redis.Password,
		DB:           int(c.Redis.Db),
		ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
		WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
		// 连接池配置
		PoolSize:        20,
		MinIdleConns:    5,
		PoolTimeout:     5 * time.Second,
		ConnMaxLifetime: 10 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		// 命令失败重试
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		l.Errorf("failed pinging redis: %v", err)
		return nil, nil, errors.Newf(500, "REDIS_PING_FAILED", "failed pinging redis: %v", err)
	}

	cleanup := func() {
		l.Infof("closing redis connection")
		if err := rdb.Close(); err != nil {
			l.Error(err)
		}
	}

	l.Info("Redis connection established successfully")
	return rdb, cleanup, nil
}

// NewMysql 创建并配置 MySQL 数据库连接
func NewMysql(c *conf.Data, logger log.Logger) (*xorm.Engine, func(), error) {
	l := log.NewHelper(logger)
	if c == nil || c.Database == nil {
		return nil, nil, errors.Newf(500, "DATA_CONFIG_REQUIRED", "data config is required")
	}

	db, err := xorm.NewEngine(c.Database.Driver, c.Database.Source)
	if err != nil {
		l.Errorf("failed opening db: %v", err)
		return nil, nil, errors.Newf(500, "DB_OPEN_FAILED", "failed opening db: %v", err)
	}

	// 设置连接池参数
	db.SetMaxIdleConns(defaultInt(c.Database.MaxIdleConns, 5))
	db.SetMaxOpenConns(defaultInt(c.Database.MaxOpenConns, 30))
	if db.DB() != nil {
		db.DB().SetConnMaxLifetime(3 * time.Minute)
		db.DB().SetConnMaxIdleTime(1 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		l.Errorf("failed pinging db: %v", err)
		_ = db.Close()
		return nil, nil, errors.Newf(500, "DB_PING_FAILED", "failed pinging db: %v", err)
	}
	cleanup := func() {
		l.Info("closing mysql connection")
		if err := db.Close(); err != nil {
			l.Error(err)
		}
	}
	l.Info("MySQL connection established successfully")
	return db, cleanup, nil
}

// defaultInt 返回配置值或默认值
func defaultInt(value int32, defaultValue int) int {
	if v := int(value); v > 0 {
		return v
	}
	return defaultValue
}
