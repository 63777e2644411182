// Package adapter holds the registry of deployment adapters a site can be
// wired to. Adapter implementations live in subpackages and register
// themselves from init, the same way themes plug into the generator.
package adapter

import (
	"sort"
	"strings"
	"sync"
)

// Target names the hosting platform a site build is prepared for.
type Target string

const (
	// TargetStatic produces a plain static build with no adapter.
	TargetStatic Target = "static"
	// TargetVercel wires the Vercel adapter into the build.
	TargetVercel Target = "vercel"
)

// ParseTarget case-folds raw into a known Target.
func ParseTarget(raw string) (Target, bool) {
	switch t := Target(strings.ToLower(strings.TrimSpace(raw))); t {
	case TargetStatic, TargetVercel:
		return t, true
	case "":
		return TargetStatic, true
	default:
		return "", false
	}
}

// Handle is an instantiated hosting integration. Callers embed it in the
// site configuration without interpreting it; only the renderer reads it to
// emit the import and the factory call.
type Handle interface {
	// Platform is the target the handle was created for.
	Platform() Target
	// Module is the package specifier to import the factory from.
	Module() string
	// ImportName is the identifier the factory is imported as.
	ImportName() string
	// Options are passed to the factory call; nil means a no-argument call.
	Options() map[string]any
}

// Factory creates a Handle. Factories take no arguments.
type Factory func() Handle

var (
	regMu sync.RWMutex
	reg   = map[Target]Factory{}
)

// Register registers a factory for target (first registration wins).
func Register(target Target, f Factory) {
	if f == nil || target == "" {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[target]; !ok {
		reg[target] = f
	}
}

// New instantiates the adapter registered for target. It returns nil for
// TargetStatic and for targets without a registered adapter.
func New(target Target) Handle {
	regMu.RLock()
	f := reg[target]
	regMu.RUnlock()
	if f == nil {
		return nil
	}
	return f()
}

// Registered lists targets with a registered adapter, sorted.
func Registered() []Target {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Target, 0, len(reg))
	for t := range reg {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
