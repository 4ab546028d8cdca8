// Package repokit is the glue between sql repos and the store: repos are bound
// to whichever querier the caller holds, the pool or an open transaction
package repokit

import (
	"context"

	"autolink/internal/platform/store"
)

type (
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder yields a repo of type T running on q
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc is a Binder from a plain func
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// BeginHook runs at the start of every transaction, before the caller's fn.
// Rewrite table writers use one to take the table's advisory lock
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns tx with hooks prepended to every Tx call.
// Statements run outside Tx skip the hooks
func WithBeginHooks(tx TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return tx
	}
	return hooked{TxRunner: tx, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
