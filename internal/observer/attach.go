package observer

import "context"

// Observer is anything that reacts to a store change.
type Observer interface {
	Notify()
}

type runner interface {
	Run(ctx context.Context)
}

// Attach subscribes every observer to source and starts the background
// workers of those that have one. The returned function unsubscribes them
// all; the workers stop with ctx.
func Attach(ctx context.Context, source Source, observers ...Observer) func() {
	unsubscribes := make([]func(), 0, len(observers))
	for _, o := range observers {
		if r, ok := o.(runner); ok {
			go r.Run(ctx)
		}
		unsubscribes = append(unsubscribes, source.Subscribe(o.Notify))
	}

	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}
}
