package event

import (
	"fmt"

	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Sink 记录落地接口，由logic层实现（写入数据库）
type Sink interface {
	HandleDeploy(DeployRecord) error
	HandleRound(RoundRecord) error
	HandleIssue(IssueRecord) error
}

// Dispatcher 异步记录分发器
// 记录经协程池投递给Sink持久化，发射端不被数据库写入阻塞
type Dispatcher struct {
	sink Sink
	pool *ants.Pool
}

// NewDispatcher 创建分发器
func NewDispatcher(sink Sink, poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher pool: %w", err)
	}
	return &Dispatcher{sink: sink, pool: pool}, nil
}

// EmitDeploy 投递部署记录
func (d *Dispatcher) EmitDeploy(record DeployRecord) {
	d.submit(func() {
		if err := d.sink.HandleDeploy(record); err != nil {
			logger.Error("Failed to persist deploy record for %s: %v", record.Address.Hex(), err)
		}
	})
}

// EmitRound 投递轮次记录
func (d *Dispatcher) EmitRound(record RoundRecord) {
	d.submit(func() {
		if err := d.sink.HandleRound(record); err != nil {
			logger.Error("Failed to persist round record %d/%s: %v",
				record.RoundID, record.Collection.Hex(), err)
		}
	})
}

// EmitIssue 投递发行记录
func (d *Dispatcher) EmitIssue(record IssueRecord) {
	d.submit(func() {
		if err := d.sink.HandleIssue(record); err != nil {
			logger.Error("Failed to persist issue record item %d: %v", record.ItemID, err)
		}
	})
}

func (d *Dispatcher) submit(task func()) {
	if err := d.pool.Submit(task); err != nil {
		logger.Error("Failed to submit record task: %v", err)
	}
}

// Stop 关闭协程池，等待在途任务完成
func (d *Dispatcher) Stop() {
	d.pool.Release()
}
