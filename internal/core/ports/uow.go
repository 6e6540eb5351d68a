package ports

import "context"

// UnitOfWork runs fn inside a single transactional boundary. Every store
// operation performed through the context passed to fn commits atomically
// with the rest, or not at all; fn returning an error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CommitHooks collects side effects deferred until the surrounding
// transaction commits, so a rollback cannot leak them.
type CommitHooks struct {
	fns []func()
}

// Run executes the registered hooks in registration order.
func (h *CommitHooks) Run() {
	for _, fn := range h.fns {
		fn()
	}
}

type commitHooksKey struct{}

// WithCommitHooks returns a context carrying a fresh hook collector.
// UnitOfWork implementations install one for each transaction attempt and
// call Run only after the commit succeeds.
func WithCommitHooks(ctx context.Context) (context.Context, *CommitHooks) {
	hooks := &CommitHooks{}
	return context.WithValue(ctx, commitHooksKey{}, hooks), hooks
}

// AfterCommit defers fn until the transaction around ctx commits. It
// reports false when ctx carries no transaction; the caller then runs the
// side effect immediately.
func AfterCommit(ctx context.Context, fn func()) bool {
	hooks, ok := ctx.Value(commitHooksKey{}).(*CommitHooks)
	if !ok {
		return false
	}
	hooks.fns = append(hooks.fns, fn)
	return true
}
