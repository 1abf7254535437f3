package inetcore

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type a Machine writes diagnostics
// through. It's a type alias rather than a new interface so callers can
// pass in anything built with logiface's own facilities — a stumpy
// backend, a test-capturing backend, or their own.
type Logger = logiface.Logger[*stumpy.Event]

// defaultLogger builds the logger a Machine uses when WithLogger is not
// supplied: JSON events written to stderr, the same pairing
// logiface-stumpy's own examples use.
func defaultLogger() *Logger {
	return stumpy.L.New(stumpy.L.WithStumpy())
}

// resourceRetryCategory is the catrate category key used to rate-limit
// resource-exhaustion warnings; it's scoped per worker so one starving
// thread doesn't suppress another's diagnostics.
type resourceRetryCategory uint32

// reportResourceRetry logs a rate-limited warning when a worker has to
// push a redex back because a rule's resource needs weren't met yet. This
// is expected, routine backpressure under load, not a failure — the
// limiter exists so a sustained contention storm doesn't flood the log.
func (m *Machine) reportResourceRetry(workerID uint32, rule Rule) {
	if m.retryLimiter == nil || m.logger == nil {
		return
	}
	if _, allowed := m.retryLimiter.Allow(resourceRetryCategory(workerID)); !allowed {
		return
	}
	m.logger.Warning().
		Int(`worker`, int(workerID)).
		Str(`rule`, rule.String()).
		Log(`interaction deferred: resources temporarily unavailable`)
}

// reportFatal logs an unconditional error entry for a hard failure —
// arena exhaustion, a malformed book, or anything else that means the
// Machine cannot make progress no matter how many times it retries.
func (m *Machine) reportFatal(err error) {
	if m.logger == nil {
		return
	}
	m.logger.Err().Err(err).Log(`machine halted`)
}

// defaultRetryLimiter throttles resource-retry warnings to at most a
// handful per second per worker, generous enough to show a sustained
// contention pattern without drowning the log during normal operation.
func defaultRetryLimiter() *catrate.Limiter {
	return catrate.NewLimiter(map[time.Duration]int{
		time.Second: 5,
	})
}
