// Package engine contains the eligibility selection and quality-gated
// generation pipelines behind the five activity workflows (post, comment,
// reply, like, follow) and profile creation.
package engine

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/scottlepp/gen/internal/core/ports"
)

// EligibilityWindow is the rolling bound that scopes candidate targets to
// "recent" ones. Distinct from the UTC-calendar-day bound used for daily
// limits.
const EligibilityWindow = 24 * time.Hour

// Engine wires the injected collaborators into workflow runs. Each Run*
// method is a single sequential batch pass; scheduling is external.
type Engine struct {
	store  ports.Store
	brain  ports.Brain
	blob   ports.BlobStore
	notify ports.Notifier
	log    *slog.Logger
	rng    *rand.Rand
	now    func() time.Time
}

type Option func(*Engine)

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func WithNotifier(n ports.Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// WithRand overrides the selection randomness source, for tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(store ports.Store, brain ports.Brain, blob ports.BlobStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		brain: brain,
		blob:  blob,
		log:   slog.Default(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// notifyCommitted reports a committed action to the operator. Failures are
// logged and swallowed; a committed run never fails on notification.
func (e *Engine) notifyCommitted(ctx context.Context, title, body string) {
	if e.notify == nil {
		return
	}
	if err := e.notify.Notify(ctx, title, body); err != nil {
		e.log.Warn("notification failed", "error", err)
	}
}
