package biz

import (
	"context"
	"fmt"

	"github.com/henryforrest/The-Cube-Game/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/panjf2000/ants/v2"
)

// mirrorWorker 远端镜像补发：本地提交成功后异步写远端，
// 失败只记录与计数，绝不回滚或阻塞本地提交
type mirrorWorker struct {
	pool *ants.Pool
	repo DataRepo
	log  *log.Helper
}

func newMirrorWorker(capacity int, repo DataRepo, logger log.Logger) (*mirrorWorker, error) {
	pool, err := ants.NewPool(capacity, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %v", err)
	}
	return &mirrorWorker{
		pool: pool,
		repo: repo,
		log:  log.NewHelper(logger),
	}, nil
}

// enqueue 提交一次镜像写入。池满直接降级为丢弃并计数
func (w *mirrorWorker) enqueue(collection, playerID string, todayScore int) {
	err := w.pool.Submit(func() {
		defer xgo.RecoverFromError(nil)

		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()

		if err := w.repo.MirrorScore(ctx, collection, playerID, todayScore); err != nil {
			mMirrorFailures.WithLabelValues(collection).Inc()
			w.log.Warnf("mirror write failed: collection=%s player=%s: %v", collection, playerID, err)
		}
	})
	if err != nil {
		mMirrorFailures.WithLabelValues(collection).Inc()
		w.log.Warnf("mirror enqueue dropped: collection=%s player=%s: %v", collection, playerID, err)
	}
}

func (w *mirrorWorker) release() {
	if w.pool != nil {
		w.pool.Release()
	}
}
