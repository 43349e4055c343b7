// Package conf holds the bootstrap configuration scanned from configs/config.yaml.
package conf

import "time"

// Duration 配置中的时长字符串，如 "1s"、"500ms"
type Duration string

// AsDuration 解析时长，非法或空值返回 0
func (d Duration) AsDuration() time.Duration {
	if d == "" {
		return 0
	}
	v, err := time.ParseDuration(string(d))
	if err != nil {
		return 0
	}
	return v
}

// Bootstrap 启动配置
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Game   *Game   `json:"game"`
	Log    *Log    `json:"log"`
	Notify *Notify `json:"notify"`
}

type Server struct {
	Http *Server_HTTP `json:"http"`
}

type Server_HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

type Data struct {
	Database *Data_Database `json:"database"`
	Redis    *Data_Redis    `json:"redis"`
	S3       *Data_S3       `json:"s3"`
}

type Data_Database struct {
	Driver       string `json:"driver"`
	Source       string `json:"source"`
	MaxIdleConns int32  `json:"max_idle_conns"`
	MaxOpenConns int32  `json:"max_open_conns"`
}

type Data_Redis struct {
	Addr         []string `json:"addr"`
	Password     string   `json:"password"`
	Db           int32    `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

type Data_S3 struct {
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	Endpoint        string `json:"endpoint"`
	AccessKeyId     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// Game 玩法配置
type Game struct {
	// DevReset 是否开放重置接口（仅测试环境）
	DevReset bool `json:"dev_reset"`
	// ShapeRandomY 形状记忆采样是否保留随机 y（与原实现一致）
	ShapeRandomY *bool `json:"shape_random_y"`
	// MirrorWorkers 远端镜像写入的 worker 数
	MirrorWorkers int32 `json:"mirror_workers"`
	// SnapshotCron 排行榜快照间隔，空则不开启
	SnapshotEvery Duration `json:"snapshot_every"`
}

// ShapeRandomYEnabled 默认 true，显式 false 才关闭
func (g *Game) ShapeRandomYEnabled() bool {
	if g == nil || g.ShapeRandomY == nil {
		return true
	}
	return *g.ShapeRandomY
}

type Log struct {
	Mode  int32  `json:"mode"`
	Level string `json:"level"`
	App   string `json:"app"`
	Dir   string `json:"dir"`
	File  bool   `json:"file"`
}

type Notify struct {
	Enabled       bool   `json:"enabled"`
	WebhookUrl    string `json:"webhook_url"`
	SigningSecret string `json:"signing_secret"`
	Prefix        string `json:"prefix"`
}

func (n *Notify) GetWebhookUrl() string {
	if n == nil {
		return ""
	}
	return n.WebhookUrl
}

func (n *Notify) GetSigningSecret() string {
	if n == nil {
		return ""
	}
	return n.SigningSecret
}

func (n *Notify) GetPrefix() string {
	if n == nil {
		return ""
	}
	return n.Prefix
}
