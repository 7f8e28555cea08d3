package purr

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader produces a yarn ball. It runs at most once per namespace key.
type Loader func(ctx context.Context) (*YarnBall, error)

// Namespace registers module loaders and caches what they resolve to.
// Concurrent GetModule calls for a key that is still loading wait on the
// same in-flight load.
type Namespace struct {
	mu      sync.Mutex
	loaders map[string]Loader
	slots   map[string]*moduleSlot
	flight  singleflight.Group
	// waits maps a loading module to the modules its loader is blocked on.
	waits map[string]map[string]int
}

type moduleSlot struct {
	ball *YarnBall
	err  error
}

type loadChainKey struct{}

func NewNamespace() *Namespace {
	return &Namespace{
		loaders: make(map[string]Loader),
		slots:   make(map[string]*moduleSlot),
		waits:   make(map[string]map[string]int),
	}
}

// AddModule registers loader under key. A key can be registered once.
func (n *Namespace) AddModule(key string, loader Loader) error {
	if loader == nil {
		return invalidImport("module %q has no loader", key)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, exists := n.loaders[key]; exists {
		return invalidImport("module %q is already registered", key)
	}
	n.loaders[key] = loader
	return nil
}

// GetModule resolves key, running its loader on first use. The outcome,
// failure included, is cached: the loader never runs twice. In-flight loads
// are not cancelled when ctx is.
//
// An import loop fails with InvalidImport whether it closes inside one load
// chain or across loads that were started by different callers.
func (n *Namespace) GetModule(ctx context.Context, key string) (*YarnBall, error) {
	n.mu.Lock()
	loader, registered := n.loaders[key]
	slot := n.slots[key]
	n.mu.Unlock()
	if !registered {
		return nil, invalidImport("module %q is not registered", key)
	}
	if slot != nil {
		return slot.ball, slot.err
	}

	chain := loadChainFrom(ctx)
	if cycle, ok := loadCycle(chain, key); ok {
		return nil, invalidImport("circular import: %s", strings.Join(cycle, " -> "))
	}
	if len(chain) > 0 {
		waiter := chain[len(chain)-1]
		n.mu.Lock()
		if path, ok := n.waitPath(key, waiter); ok {
			n.mu.Unlock()
			return nil, invalidImport("circular import: %s", strings.Join(append([]string{waiter}, path...), " -> "))
		}
		n.addWait(waiter, key)
		n.mu.Unlock()
		defer n.dropWait(waiter, key)
	}

	v, _, _ := n.flight.Do(key, func() (any, error) {
		n.mu.Lock()
		if cached := n.slots[key]; cached != nil {
			n.mu.Unlock()
			return cached, nil
		}
		n.mu.Unlock()

		loadCtx := context.WithValue(context.WithoutCancel(ctx), loadChainKey{}, append(slices.Clip(chain), key))
		ball, err := loader(loadCtx)
		if err == nil && ball == nil {
			err = invalidImport("module %q loader returned no yarn ball", key)
		}
		resolved := &moduleSlot{ball: ball, err: External(err)}
		if resolved.err != nil {
			resolved.ball = nil
		}

		n.mu.Lock()
		n.slots[key] = resolved
		n.mu.Unlock()
		return resolved, nil
	})
	slot = v.(*moduleSlot)
	return slot.ball, slot.err
}

func (n *Namespace) Has(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.loaders[key]
	return ok
}

// Loaded reports whether key has been resolved, successfully or not.
func (n *Namespace) Loaded(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.slots[key]
	return ok
}

func (n *Namespace) Keys() []string {
	n.mu.Lock()
	keys := make([]string, 0, len(n.loaders))
	for key := range n.loaders {
		keys = append(keys, key)
	}
	n.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// Reset drops every cached resolution but keeps registrations.
func (n *Namespace) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.slots = make(map[string]*moduleSlot)
}

// waitPath finds a chain of blocked loaders leading from start to target.
// Callers hold n.mu.
func (n *Namespace) waitPath(start, target string) ([]string, bool) {
	visited := make(map[string]bool)
	var walk func(key string) ([]string, bool)
	walk = func(key string) ([]string, bool) {
		if key == target {
			return []string{key}, true
		}
		if visited[key] {
			return nil, false
		}
		visited[key] = true
		for _, next := range slices.Sorted(maps.Keys(n.waits[key])) {
			if rest, ok := walk(next); ok {
				return append([]string{key}, rest...), true
			}
		}
		return nil, false
	}
	return walk(start)
}

func (n *Namespace) addWait(waiter, key string) {
	if n.waits[waiter] == nil {
		n.waits[waiter] = make(map[string]int)
	}
	n.waits[waiter][key]++
}

func (n *Namespace) dropWait(waiter, key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.waits[waiter][key]--; n.waits[waiter][key] <= 0 {
		delete(n.waits[waiter], key)
	}
	if len(n.waits[waiter]) == 0 {
		delete(n.waits, waiter)
	}
}

func loadChainFrom(ctx context.Context) []string {
	chain, _ := ctx.Value(loadChainKey{}).([]string)
	return chain
}

// loadCycle reports the import loop closed by loading next on top of chain.
func loadCycle(chain []string, next string) ([]string, bool) {
	idx := slices.Index(chain, next)
	if idx < 0 {
		return nil, false
	}
	return append(slices.Clone(chain[idx:]), next), true
}
