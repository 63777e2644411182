package watch

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecfg/internal/content"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"github.com/go-co-op/gocron/v2"
)

// startScheduler registers the periodic content check when schedule is set.
// The returned func shuts the scheduler down.
func (r *Runner) startScheduler(schedule string) (func(), error) {
	if schedule == "" {
		return func() {}, nil
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryWatch, "create scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(r.recheck),
		gocron.WithName("content-recheck"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, ferrors.WrapError(err, ferrors.CategoryWatch, "invalid recheck schedule").
			WithContext("field", "watch.recheck_schedule").
			WithContext("value", schedule).
			Build()
	}
	slog.Info("Starting content recheck scheduler", logfields.Schedule(schedule))
	s.Start()
	return func() {
		if err := s.Shutdown(); err != nil {
			slog.Error("Scheduler shutdown failed", logfields.Error(err))
		}
	}, nil
}

// recheck verifies every sidebar directory still exists.
func (r *Runner) recheck() error {
	cfg := r.Config()
	err := content.Check(cfg.ContentRoot(), cfg.SiteConfiguration().Sidebar())
	r.recorder.IncContentCheck(err == nil)
	if err != nil {
		slog.Warn("Content check failed", logfields.Error(err))
		return err
	}
	slog.Debug("Content check passed", logfields.Directory(cfg.ContentRoot()))
	return nil
}
