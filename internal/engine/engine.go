// Package engine is the write side of the store: every mutation goes through
// one serialized transactional writer, and committed writes synchronously
// re-evaluate the registered read subscriptions so no subscriber ever
// observes a partially applied write.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/jlindqvist/stocklist/pkg/db"
	pkgerrors "github.com/jlindqvist/stocklist/pkg/errors"
	"github.com/jlindqvist/stocklist/pkg/logger"
	"github.com/jlindqvist/stocklist/pkg/metrics"
	"gorm.io/gorm"
)

// Evaluator computes a subscriber's snapshot from the latest committed state.
type Evaluator func(ctx context.Context) (any, error)

// Params groups dependencies for the engine.
type Params struct {
	DB      *db.Client
	Log     *logger.Logger
	Metrics *metrics.EngineMetrics
}

// Engine owns the single-writer transaction lock and the subscription hub.
type Engine struct {
	db      *db.Client
	log     *logger.Logger
	metrics *metrics.EngineMetrics

	writeMu sync.Mutex

	subMu  sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
}

// New builds an engine. Metrics may be nil.
func New(params Params) (*Engine, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.Log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Engine{
		db:      params.DB,
		log:     params.Log,
		metrics: params.Metrics,
		subs:    make(map[uint64]*Subscription),
	}, nil
}

// Write runs fn inside a transaction under the writer lock. After a commit it
// refreshes every subscription before returning, so the caller's next read is
// consistent with its own write.
func (e *Engine) Write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.db.WithTx(ctx, fn); err != nil {
		return wrapWriteError(err)
	}

	e.metrics.IncCommit(op)
	e.log.Debug(e.log.WithField(ctx, "op", op), "write committed")
	e.refresh(ctx)
	return nil
}

// Read runs fn against the latest committed state, outside the writer lock.
func (e *Engine) Read(ctx context.Context, fn func(conn *gorm.DB) error) error {
	return fn(e.db.DB().WithContext(ctx))
}

// DB exposes the underlying connection for wiring repositories.
func (e *Engine) DB() *gorm.DB {
	return e.db.DB()
}

// Subscription is a live view feed. Updates carries full snapshots; the
// buffer keeps only the newest one, so a slow consumer skips intermediate
// states rather than stalling the writer.
type Subscription struct {
	id     uint64
	eval   Evaluator
	ch     chan any
	engine *Engine
	closed bool
}

// Updates returns the snapshot feed. The channel is closed by Close.
func (s *Subscription) Updates() <-chan any {
	return s.ch
}

// Close detaches the subscription and closes its feed.
func (s *Subscription) Close() {
	s.engine.subMu.Lock()
	defer s.engine.subMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(s.engine.subs, s.id)
	close(s.ch)
}

// Subscribe registers an evaluator and delivers its current snapshot
// immediately, then a fresh one after every committed write.
func (e *Engine) Subscribe(ctx context.Context, eval Evaluator) (*Subscription, error) {
	if eval == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "evaluator is required")
	}

	// Evaluate under the hub lock so no commit can slip between the initial
	// snapshot and the registration.
	e.subMu.Lock()
	defer e.subMu.Unlock()

	snapshot, err := eval(ctx)
	if err != nil {
		return nil, err
	}

	e.nextID++
	sub := &Subscription{
		id:     e.nextID,
		eval:   eval,
		ch:     make(chan any, 1),
		engine: e,
	}
	e.subs[sub.id] = sub
	sub.push(snapshot)
	return sub, nil
}

// wrapWriteError tags raw storage failures while letting already-typed
// domain errors through untouched.
func wrapWriteError(err error) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write failed")
}

func (e *Engine) refresh(ctx context.Context) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	if len(e.subs) == 0 {
		return
	}

	start := time.Now()
	for _, sub := range e.subs {
		snapshot, err := sub.eval(ctx)
		if err != nil {
			e.log.Error(ctx, "subscription refresh failed", err)
			continue
		}
		sub.push(snapshot)
	}
	e.metrics.IncRefresh()
	e.metrics.ObserveRefresh(time.Since(start))
}

// push delivers latest-wins: a pending unread snapshot is replaced. Callers
// hold subMu, so push never races Close.
func (s *Subscription) push(snapshot any) {
	if s.closed {
		return
	}
	select {
	case s.ch <- snapshot:
	default:
		select {
		case <-s.ch:
		default:
		}
		s.ch <- snapshot
	}
}
