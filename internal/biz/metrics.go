package biz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 通用标签
const labelGame, labelOutcome, labelCollection = "game", "outcome", "collection"

// 攻略与评分
var (
	mAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cube_attempts_total",
		Help: "已提交的攻略数",
	}, []string{labelGame, labelOutcome})
	mLockedRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cube_attempt_locked_total",
		Help: "因当日已攻略被拒绝的提交数",
	}, []string{labelGame})
	mScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cube_attempt_score",
		Help:    "攻略得分分布 (0-100)",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{labelGame})
)

// 远端镜像与快照
var (
	mMirrorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cube_mirror_failures_total",
		Help: "远端镜像写入失败数（本地提交不受影响）",
	}, []string{labelCollection})
	mSnapshotUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cube_snapshot_uploads_total",
		Help: "排行榜快照上传结果",
	}, []string{"result"})
)

// 会话
var mBallSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "cube_ball_sessions",
	Help: "进行中的隐形球会话数",
})

func observeAttempt(game string, outcome string, score int) {
	mAttempts.WithLabelValues(game, outcome).Inc()
	mScores.WithLabelValues(game).Observe(float64(score))
}
