package generator

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/content"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/git"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/render"
	"github.com/google/uuid"
)

// Report summarizes a generation run.
type Report struct {
	RunID        string
	Target       string
	Format       render.Format
	Path         string
	ManifestPath string // empty when the manifest is disabled
	Digest       string
	Changed      bool
	Groups       []content.Group
	Duration     time.Duration
}

// Generator runs generation for one configuration.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder (NoopRecorder by default).
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithClock overrides the time source used for manifests and durations.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs generation for cfg with default options.
func Generate(ctx context.Context, cfg *config.Config) (*Report, error) {
	return New(cfg).Generate(ctx)
}

// Options builds the option object for the configured target without
// touching the output directory.
func (g *Generator) Options(ctx context.Context) (render.AstroConfig, error) {
	if err := ctx.Err(); err != nil {
		return render.AstroConfig{}, ferrors.WrapError(err, ferrors.CategoryRuntime, "generation canceled").Build()
	}
	editBase, err := g.editLinkBase()
	if err != nil {
		return render.AstroConfig{}, err
	}
	return render.Build(g.cfg.SiteConfiguration(), render.Options{EditLinkBaseURL: editBase}), nil
}

// Render builds and encodes the option object in the configured format.
func (g *Generator) Render(ctx context.Context) ([]byte, error) {
	opts, err := g.Options(ctx)
	if err != nil {
		return nil, err
	}
	return render.Render(opts, g.cfg.Output.Format)
}

// Generate renders the configuration, writes it and the run manifest.
func (g *Generator) Generate(ctx context.Context) (report *Report, err error) {
	start := g.now()
	runID := g.newID()
	log := slog.With(logfields.RunID(runID))
	defer func() {
		d := g.now().Sub(start)
		g.recorder.ObserveGenerateDuration(d)
		switch {
		case err != nil:
			g.recorder.IncGenerateOutcome(metrics.OutcomeFailed)
			log.Error("Generation failed", logfields.Duration(d), logfields.Error(err))
		case report.Changed:
			g.recorder.IncGenerateOutcome(metrics.OutcomeWritten)
		default:
			g.recorder.IncGenerateOutcome(metrics.OutcomeUnchanged)
		}
	}()

	cfg := g.cfg
	siteCfg := cfg.SiteConfiguration()
	groups, err := content.Discover(cfg.ContentRoot(), siteCfg.Sidebar())
	if err != nil {
		return nil, err
	}
	for _, grp := range groups {
		g.recorder.SetGroupPages(grp.Label, len(grp.Pages))
	}
	if cfg.Content.Validate {
		err = content.Check(cfg.ContentRoot(), siteCfg.Sidebar())
		if err == nil {
			err = content.CheckPages(groups)
		}
		g.recorder.IncContentCheck(err == nil)
		if err != nil {
			return nil, err
		}
	}

	data, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "generation canceled").Build()
	}

	path := cfg.OutputPath()
	changed, err := render.WriteFile(path, data, !cfg.Output.AlwaysWrite)
	if err != nil {
		return nil, err
	}

	report = &Report{
		RunID:   runID,
		Target:  string(siteCfg.Target()),
		Format:  cfg.Output.Format,
		Path:    path,
		Digest:  render.Digest(data),
		Changed: changed,
		Groups:  groups,
	}
	report.Duration = g.now().Sub(start)

	if cfg.Output.ManifestEnabled() {
		report.ManifestPath = cfg.ManifestPath()
		if err = g.writeManifest(report, start); err != nil {
			return nil, err
		}
	}

	if changed {
		log.Info("Site configuration written",
			logfields.Path(path),
			logfields.Target(report.Target),
			logfields.Format(string(report.Format)),
			logfields.Pages(content.Pages(groups)),
			logfields.Duration(report.Duration))
	} else {
		log.Info("Site configuration unchanged", logfields.Path(path))
	}
	return report, nil
}

func (g *Generator) editLinkBase() (string, error) {
	el := g.cfg.EditLink
	switch {
	case el.BaseURL != "":
		return el.BaseURL, nil
	case el.FromGit:
		base, err := git.EditBaseURL(g.cfg.BaseDir(), el.Remote, el.Branch, g.cfg.ProjectDir())
		if err != nil {
			return "", err
		}
		slog.Debug("Derived edit link from repository", logfields.URL(base))
		return base, nil
	default:
		return "", nil
	}
}
