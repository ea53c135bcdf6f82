package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cambium/pkg/domain"
)

// Merge combines multiple hook sets into one. Callbacks fire in argument
// order; nil entries are skipped.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBind:    merge(hooks, func(h domain.LifecycleHooks) eventFunc { return h.OnBind }),
		OnInvoke:  merge(hooks, func(h domain.LifecycleHooks) eventFunc { return h.OnInvoke }),
		OnCommit:  merge(hooks, func(h domain.LifecycleHooks) eventFunc { return h.OnCommit }),
		OnFailure: merge(hooks, func(h domain.LifecycleHooks) eventFunc { return h.OnFailure }),
	}
}

type eventFunc func(context.Context, *domain.TransitionEvent)

func merge(hooks []domain.LifecycleHooks, pick func(domain.LifecycleHooks) eventFunc) eventFunc {
	var fns []eventFunc
	for _, h := range hooks {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, ev *domain.TransitionEvent) {
		for _, fn := range fns {
			fn(ctx, ev)
		}
	}
}

// NewLoggingHooks returns hooks that log every dispatch event through the
// given structured logger.
func NewLoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBind: func(ctx context.Context, ev *domain.TransitionEvent) {
			logger.InfoContext(ctx, "bind", "machine", ev.Machine, "state", ev.State)
		},
		OnInvoke: func(ctx context.Context, ev *domain.TransitionEvent) {
			logger.InfoContext(ctx, "invoke", "machine", ev.Machine, "state", ev.State, "transition", ev.Transition)
		},
		OnCommit: func(ctx context.Context, ev *domain.TransitionEvent) {
			logger.InfoContext(ctx, "commit", "machine", ev.Machine, "from", ev.State, "to", ev.Next, "transition", ev.Transition)
		},
		OnFailure: func(ctx context.Context, ev *domain.TransitionEvent) {
			logger.WarnContext(ctx, "dispatch failed", "machine", ev.Machine, "state", ev.State, "transition", ev.Transition, "error", ev.Err)
		},
	}
}
