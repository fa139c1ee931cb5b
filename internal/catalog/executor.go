package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

// Strategy 定义目录查询策略接口。
// 给定已提交的筛选状态，返回满足全部条件并按排序键排好序的商品。
// 空结果不是错误，返回空切片和nil错误。
type Strategy interface {
	Fetch(ctx context.Context, state FilterState) ([]*domain.Product, error)
}

// Status 表示一次查询周期所处的阶段
type Status int

const (
	StatusIdle    Status = iota // 尚未发起查询
	StatusLoading               // 查询进行中
	StatusSuccess               // 查询成功（包括空结果）
	StatusError                 // 查询失败
)

// String 返回状态的可读名称
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Result 表示当前查询周期的可观测结果
type Result struct {
	Status Status
	State  FilterState       // 产生该结果的筛选状态
	Items  []*domain.Product // 仅Status==StatusSuccess时有效
	Err    error             // 仅Status==StatusError时有效
}

// Executor 执行目录查询并保证"最后提交优先"：
// 每次Apply分配单调递增的代号，过期代号的响应到达时直接丢弃，
// 防止慢的旧查询覆盖快的新查询结果。
type Executor struct {
	strategy Strategy
	timeout  time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	seq      uint64
	cur      Result
	onChange func(Result)
}

// NewExecutor 创建查询执行器。
// timeout为单次查询的超时上限，<=0时不限制。
func NewExecutor(strategy Strategy, timeout time.Duration, logger *zap.Logger) *Executor {
	return &Executor{
		strategy: strategy,
		timeout:  timeout,
		logger:   logger,
		cur:      Result{Status: StatusIdle},
	}
}

// OnChange 注册结果变更回调。
// 回调在持有内部锁的情况下同步调用，不要在回调里再调用Executor方法。
func (e *Executor) OnChange(fn func(Result)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// Snapshot 返回当前结果的快照
func (e *Executor) Snapshot() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur
}

// Apply 提交一次查询。立即进入loading状态并异步执行；
// 若在完成前又有新的Apply，本次结果将被丢弃。
func (e *Executor) Apply(state FilterState) {
	state = state.Clone()

	e.mu.Lock()
	e.seq++
	gen := e.seq
	e.cur = Result{Status: StatusLoading, State: state}
	e.notifyLocked()
	e.mu.Unlock()

	go e.run(gen, state)
}

func (e *Executor) run(gen uint64, state FilterState) {
	ctx := context.Background()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	items, err := e.strategy.Fetch(ctx, state)

	e.mu.Lock()
	defer e.mu.Unlock()

	// 过期响应：期间已有更新的Apply，按最后提交优先原则丢弃
	if gen != e.seq {
		if e.logger != nil {
			e.logger.Debug("stale catalog result discarded",
				zap.Uint64("generation", gen),
				zap.Uint64("latest", e.seq),
			)
		}
		return
	}

	if err != nil {
		// 失败时清空上一次的结果，不展示陈旧数据
		e.cur = Result{Status: StatusError, State: state, Err: err}
	} else {
		if items == nil {
			items = []*domain.Product{}
		}
		e.cur = Result{Status: StatusSuccess, State: state, Items: items}
	}
	e.notifyLocked()
}

// Do 同步执行一次查询，供HTTP请求路径使用。
// 与Apply共用策略和超时配置，但不参与代号竞争。
func (e *Executor) Do(ctx context.Context, state FilterState) ([]*domain.Product, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	items, err := e.strategy.Fetch(ctx, state)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Product{}
	}
	return items, nil
}

func (e *Executor) notifyLocked() {
	if e.onChange != nil {
		e.onChange(e.cur)
	}
}
