package inetcore

import "github.com/joeycumines/go-catrate"

// machineConfig holds the resolved configuration for a new Machine.
type machineConfig struct {
	threads      int
	nodeArenaLen int
	varsArenaLen int
	bagCapacity  int
	logger       *Logger
	retryLimiter *catrate.Limiter
}

// MachineOption configures a Machine at construction time.
type MachineOption interface {
	applyMachine(*machineConfig)
}

type machineOptionFunc func(*machineConfig)

func (f machineOptionFunc) applyMachine(c *machineConfig) { f(c) }

// WithThreads sets the number of worker goroutines a Machine runs. It
// must be a power of two, since the work-stealing tournament tree is only
// well-defined for one; New returns ErrThreadCountInvalid otherwise.
func WithThreads(n int) MachineOption {
	return machineOptionFunc(func(c *machineConfig) {
		c.threads = n
	})
}

// WithArenaSize sets the capacity of the shared node and variable arenas.
func WithArenaSize(nodes, vars int) MachineOption {
	return machineOptionFunc(func(c *machineConfig) {
		c.nodeArenaLen = nodes
		c.varsArenaLen = vars
	})
}

// WithBagCapacity sets the per-worker redex bag capacity.
func WithBagCapacity(n int) MachineOption {
	return machineOptionFunc(func(c *machineConfig) {
		c.bagCapacity = n
	})
}

// WithLogger overrides the structured logger a Machine reports
// diagnostics through. Passing nil disables logging entirely.
func WithLogger(logger *Logger) MachineOption {
	return machineOptionFunc(func(c *machineConfig) {
		c.logger = logger
	})
}

// WithRetryLimiter overrides the rate limiter used to throttle
// resource-retry warnings. Passing nil disables resource-retry warnings
// entirely (no retry is logged); fatal errors are still logged.
func WithRetryLimiter(limiter *catrate.Limiter) MachineOption {
	return machineOptionFunc(func(c *machineConfig) {
		c.retryLimiter = limiter
	})
}

const (
	defaultThreads      = 1
	defaultNodeArenaLen = 1 << 20
	defaultVarsArenaLen = 1 << 20
	defaultBagCapacity  = 1 << 16
)

func resolveMachineOptions(opts []MachineOption) (*machineConfig, error) {
	cfg := &machineConfig{
		threads:      defaultThreads,
		nodeArenaLen: defaultNodeArenaLen,
		varsArenaLen: defaultVarsArenaLen,
		bagCapacity:  defaultBagCapacity,
		logger:       defaultLogger(),
		retryLimiter: defaultRetryLimiter(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyMachine(cfg)
	}
	if cfg.threads < 1 || cfg.threads&(cfg.threads-1) != 0 {
		return nil, &FatalError{Cause: ErrThreadCountInvalid, Message: "invalid thread count"}
	}
	return cfg, nil
}
