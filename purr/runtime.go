package purr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// PreludeKey is the namespace key of the built-in yarn ball every runtime
// registers.
const PreludeKey = "purr"

// Runtime ties a namespace to a host and is the boundary where uncaught
// program failures are observed.
type Runtime struct {
	config    Config
	namespace *Namespace
	host      Host
	codec     Codec
	logger    *slog.Logger

	// runMu serializes Run; runCtx is the context of the run in progress.
	runMu  sync.Mutex
	runCtx atomic.Pointer[context.Context]
}

type Option func(*Runtime)

func WithHost(host Host) Option {
	return func(r *Runtime) { r.host = host }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) { r.logger = logger }
}

// WithNamespace shares an existing namespace instead of creating one.
func WithNamespace(ns *Namespace) Option {
	return func(r *Runtime) { r.namespace = ns }
}

// NewRuntime applies config defaults and registers the prelude.
func NewRuntime(cfg Config, opts ...Option) *Runtime {
	cfg = cfg.withDefaults()
	r := &Runtime{
		config: cfg,
		codec:  Codec{MaxPayloadBytes: cfg.MaxJSONPayloadBytes},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.namespace == nil {
		r.namespace = NewNamespace()
	}
	if r.host == nil {
		r.host = NewStdioHost(os.Stdin, os.Stdout)
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}
	if !r.namespace.Has(PreludeKey) {
		_ = r.namespace.AddModule(PreludeKey, func(context.Context) (*YarnBall, error) {
			return r.prelude(), nil
		})
	}
	return r
}

func (r *Runtime) Config() Config        { return r.config }
func (r *Runtime) Namespace() *Namespace { return r.namespace }
func (r *Runtime) Host() Host            { return r.host }
func (r *Runtime) Logger() *slog.Logger  { return r.logger }
func (r *Runtime) Codec() Codec          { return r.codec }

func (r *Runtime) Encode(v Value) (string, error) {
	return r.codec.Encode(v)
}

func (r *Runtime) Decode(text string) (Value, error) {
	return r.codec.Decode(text)
}

func (r *Runtime) AddModule(key string, loader Loader) error {
	return r.namespace.AddModule(key, loader)
}

func (r *Runtime) GetModule(ctx context.Context, key string) (*YarnBall, error) {
	return r.namespace.GetModule(ctx, key)
}

// Meow emits the purrified values as one line, separated by spaces.
func (r *Runtime) Meow(values ...Value) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Purrify(v)
	}
	if err := r.host.EmitLine(strings.Join(parts, " ")); err != nil {
		return External(err)
	}
	return nil
}

// Listen reads one line from the host. End of input reads as nothing.
func (r *Runtime) Listen(ctx context.Context) (Value, error) {
	line, err := r.host.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return Nothing, nil
	}
	if err != nil {
		return Nothing, External(err)
	}
	return NewString(line), nil
}

// Run resolves the configured entry point. Loading the entry yarn ball runs
// the program; a failure is logged here and returned. A runtime runs one
// program at a time and prelude reads honor the ctx of the current run.
func (r *Runtime) Run(ctx context.Context) (*YarnBall, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	key := r.config.EntryPoint
	ctx = withModuleKey(ctx, key)
	r.runCtx.Store(&ctx)
	defer r.runCtx.Store(nil)

	started := time.Now()
	r.logger.InfoContext(ctx, "running program")
	ball, err := r.namespace.GetModule(ctx, key)
	if err != nil {
		r.logger.ErrorContext(ctx, "program failed",
			"code", CodeOf(err).String(),
			"error", err,
			"elapsed", time.Since(started),
		)
		return nil, err
	}
	r.logger.InfoContext(ctx, "program finished",
		"exports", len(ball.Fields()),
		"elapsed", time.Since(started),
	)
	return ball, nil
}

// prelude exposes the runtime to compiled programs as a yarn ball.
func (r *Runtime) prelude() *YarnBall {
	return NewYarnBall(PreludeKey,
		Func("meow", func(args []Value) (Value, error) {
			return Nothing, r.Meow(args...)
		}),
		Func("listen", func(args []Value) (Value, error) {
			return r.Listen(r.currentRunContext())
		}),
		Func("purrify", func(args []Value) (Value, error) {
			return NewString(Purrify(argAt(args, 0))), nil
		}),
		Func("typeOf", func(args []Value) (Value, error) {
			return NewString(TypeOf(argAt(args, 0))), nil
		}),
		Func("encode", func(args []Value) (Value, error) {
			text, err := r.codec.Encode(argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			return NewString(text), nil
		}),
		Func("decode", func(args []Value) (Value, error) {
			text, err := EnsureString(argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			return r.codec.Decode(text)
		}),
		Func("instanceOf", func(args []Value) (Value, error) {
			inst, err := EnsureInstance(argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			template, err := EnsureClowder(argAt(args, 1))
			if err != nil {
				return Nothing, err
			}
			return NewBool(InstanceOf(inst, template)), nil
		}),
	)
}

func (r *Runtime) currentRunContext() context.Context {
	if ctx := r.runCtx.Load(); ctx != nil {
		return *ctx
	}
	return context.Background()
}

// argAt returns args[i], or nothing when the caller passed fewer.
func argAt(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Nothing
}
