package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/generator"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	sourceConfig  = "config"
	sourceContent = "content"
)

// Options configure a Runner.
type Options struct {
	ConfigPath string
	Overrides  config.Overrides
	// OnGenerate is called after every generation attempt.
	OnGenerate func(*generator.Report, error)
}

// Runner owns the watch loop.
type Runner struct {
	configPath string
	overrides  config.Overrides
	onGenerate func(*generator.Report, error)

	registry *prom.Registry
	recorder *metrics.PrometheusRecorder

	mu      sync.RWMutex
	cfg     *config.Config
	watcher *fsnotify.Watcher
	watched map[string]bool
	status  Status

	// Owned by the Run goroutine.
	schedule      string
	stopScheduler func()
	metricsAddr   string
	stopServer    func()
}

// New loads the configuration and prepares a Runner. A missing configuration
// file falls back to the defaults; the file is picked up once it is created.
func New(opts Options) (*Runner, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve configuration path").WithContext("path", path).Build()
	}

	r := &Runner{
		configPath: abs,
		overrides:  opts.Overrides,
		onGenerate: opts.OnGenerate,
		registry:   prom.NewRegistry(),
		watched:    make(map[string]bool),
	}
	r.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	r.recorder = metrics.NewPrometheusRecorder(r.registry)

	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	r.cfg = cfg
	r.status = Status{Status: "starting", Target: string(cfg.Deployment.Target)}
	return r, nil
}

// Status reports the outcome of the most recent generation.
func (r *Runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Config returns the configuration currently in effect.
func (r *Runner) Config() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Registry exposes the Prometheus registry backing the runner's metrics.
func (r *Runner) Registry() *prom.Registry { return r.registry }

func (r *Runner) loadConfig() (*config.Config, error) {
	cfg, found, err := config.LoadOrDefault(r.configPath)
	if err != nil {
		return nil, err
	}
	if !found {
		slog.Warn("Configuration file not found, using defaults", logfields.Path(r.configPath))
	}
	if err := cfg.Apply(r.overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run generates once and then regenerates on changes until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWatch, "create file watcher").Build()
	}
	r.mu.Lock()
	r.watcher = w
	r.mu.Unlock()
	defer func() {
		if cerr := w.Close(); cerr != nil {
			slog.Error("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	if err := r.addWatch(filepath.Dir(r.configPath)); err != nil {
		return err
	}
	r.syncContentWatches()

	cfg := r.Config()
	if err := r.startServices(cfg); err != nil {
		return err
	}
	defer r.stopServices()

	slog.Info("Watching for changes", logfields.Path(r.configPath), logfields.Directory(cfg.ContentRoot()))
	r.generate(ctx)
	return r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) error {
	// Timers created with NewTimer drop stale ticks on Stop and Reset.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	reload := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Watch stopped")
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				r.forget(event.Name)
			}
			source := r.classify(event)
			if source == "" {
				continue
			}
			slog.Debug("Change detected", logfields.File(event.Name), logfields.Event(event.Op.String()), slog.String("source", source))
			r.recorder.IncWatchEvent(source)
			if source == sourceConfig {
				reload = true
			}
			if source == sourceContent && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					r.addTree(event.Name)
				}
			}
			timer.Reset(r.Config().Watch.DebounceDuration())

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))

		case <-timer.C:
			if reload {
				reload = false
				r.reload()
			}
			r.generate(ctx)
		}
	}
}

// classify reports which input an event belongs to, or "" when it is
// irrelevant (including our own output files).
func (r *Runner) classify(event fsnotify.Event) string {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}
	name := filepath.Clean(event.Name)
	cfg := r.Config()
	if abs(cfg.OutputPath()) == name || abs(cfg.ManifestPath()) == name {
		return ""
	}
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") && base != ".env" && base != ".env.local" {
		return ""
	}
	if filepath.Dir(name) == filepath.Dir(r.configPath) {
		switch base {
		case filepath.Base(r.configPath), ".env", ".env.local":
			return sourceConfig
		}
	}
	if within(abs(cfg.ContentRoot()), name) {
		return sourceContent
	}
	return ""
}

func (r *Runner) reload() {
	cfg, err := r.loadConfig()
	if err != nil {
		slog.Error("Configuration reload failed, keeping previous configuration", logfields.Path(r.configPath), logfields.Error(err))
		return
	}
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
	slog.Info("Configuration reloaded", logfields.Path(r.configPath), logfields.Target(string(cfg.Deployment.Target)))
	r.syncContentWatches()
	r.restartServices(cfg)
}

func (r *Runner) startServices(cfg *config.Config) error {
	stop, err := r.startScheduler(cfg.Watch.RecheckSchedule)
	if err != nil {
		return err
	}
	r.schedule, r.stopScheduler = cfg.Watch.RecheckSchedule, stop

	r.metricsAddr, r.stopServer = cfg.Watch.MetricsAddr, func() {}
	if cfg.Watch.MetricsAddr != "" {
		stop, err := r.startMetricsServer(cfg.Watch.MetricsAddr)
		if err != nil {
			r.stopScheduler()
			return err
		}
		r.stopServer = stop
	}
	return nil
}

// restartServices applies a changed recheck schedule or metrics address.
// The replacement starts before the old one stops; when it cannot start the
// old one keeps running.
func (r *Runner) restartServices(cfg *config.Config) {
	if s := cfg.Watch.RecheckSchedule; s != r.schedule {
		stop, err := r.startScheduler(s)
		if err != nil {
			slog.Error("Recheck schedule not applied, keeping previous schedule", logfields.Schedule(s), logfields.Error(err))
		} else {
			if r.stopScheduler != nil {
				r.stopScheduler()
			}
			r.schedule, r.stopScheduler = s, stop
		}
	}
	if addr := cfg.Watch.MetricsAddr; addr != r.metricsAddr {
		stop := func() {}
		var err error
		if addr != "" {
			stop, err = r.startMetricsServer(addr)
		}
		if err != nil {
			slog.Error("Metrics address not applied, keeping previous listener", logfields.Addr(addr), logfields.Error(err))
		} else {
			if r.stopServer != nil {
				r.stopServer()
			}
			r.metricsAddr, r.stopServer = addr, stop
		}
	}
}

func (r *Runner) stopServices() {
	if r.stopServer != nil {
		r.stopServer()
	}
	if r.stopScheduler != nil {
		r.stopScheduler()
	}
}

func (r *Runner) generate(ctx context.Context) {
	cfg := r.Config()
	rep, err := generator.New(cfg, generator.WithRecorder(r.recorder)).Generate(ctx)
	st := Status{Status: "ok", Target: string(cfg.Deployment.Target), UpdatedAt: time.Now().UTC()}
	if err != nil {
		st.Status = "failing"
		st.Error = err.Error()
	} else {
		st.RunID = rep.RunID
		st.Path = rep.Path
	}
	r.mu.Lock()
	r.status = st
	r.mu.Unlock()
	if r.onGenerate != nil {
		r.onGenerate(rep, err)
	}
}

// syncContentWatches watches the content root and every directory below each
// sidebar group. Missing directories are skipped; creating them under a
// watched parent adds them later.
func (r *Runner) syncContentWatches() {
	cfg := r.Config()
	root := abs(cfg.ContentRoot())
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		slog.Warn("Content root not found, content changes are not watched", logfields.Directory(root))
		return
	}
	_ = r.addWatch(root)
	for _, g := range cfg.SiteConfiguration().Sidebar() {
		r.addTree(filepath.Join(root, filepath.FromSlash(g.Directory())))
	}
}

func (r *Runner) addTree(dir string) {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if werr := r.addWatch(p); werr != nil {
			slog.Warn("Cannot watch directory", logfields.Directory(p), logfields.Error(werr))
		}
		return nil
	})
	if err != nil {
		slog.Debug("Walk failed", logfields.Directory(dir), logfields.Error(err))
	}
}

func (r *Runner) addWatch(dir string) error {
	dir = abs(dir)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher == nil || r.watched[dir] {
		return nil
	}
	if err := r.watcher.Add(dir); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWatch, fmt.Sprintf("watch directory %s", dir)).
			WithContext("path", dir).
			Build()
	}
	r.watched[dir] = true
	slog.Debug("Watching directory", logfields.Directory(dir))
	return nil
}

// forget drops a removed directory so it is watched again if recreated.
func (r *Runner) forget(p string) {
	p = abs(p)
	r.mu.Lock()
	defer r.mu.Unlock()
	for dir := range r.watched {
		if dir == p || within(p, dir) {
			delete(r.watched, dir)
		}
	}
}

func abs(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
