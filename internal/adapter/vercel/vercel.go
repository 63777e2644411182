// Package vercel registers the Vercel deployment adapter.
package vercel

import "git.home.luguber.info/inful/sitecfg/internal/adapter"

// ModuleSpecifier is the package the adapter factory is imported from.
const ModuleSpecifier = "@astrojs/vercel"

// Adapter is the Vercel hosting integration handle.
type Adapter struct{}

func init() { adapter.Register(adapter.TargetVercel, New) }

// New instantiates the adapter. It takes no arguments; the generated config
// calls the factory with none either.
func New() adapter.Handle { return &Adapter{} }

func (*Adapter) Platform() adapter.Target { return adapter.TargetVercel }
func (*Adapter) Module() string           { return ModuleSpecifier }
func (*Adapter) ImportName() string       { return "vercel" }
func (*Adapter) Options() map[string]any  { return nil }
