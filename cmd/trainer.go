package cmd

import (
	"fmt"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/config"
	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/logger"
	"github.com/abhisek/pitchperfect/internal/scene"
	"github.com/abhisek/pitchperfect/internal/views"
)

// trainer is the wired core shared by every command that runs activities.
type trainer struct {
	cat   *catalog.Catalog
	views *views.Views
	loop  *controller.Loop
	ctrl  *controller.Controller
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

func newTrainer(cfg config.Config, log *logger.Logger, r scene.Renderer) (*trainer, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", "version", cat.Version(),
		"units", len(cat.Units()), "lessons", len(cat.Lessons()), "drills", len(cat.Drills()))

	v := views.Build(scene.New(r), cat)
	loop := controller.NewLoop(controller.DefaultQueueSize, log)
	ctrl := controller.New(controller.Deps{
		Catalog:   cat,
		Views:     v,
		Scheduler: loop,
		Logger:    log,
	}, activity.Config{FeedbackDwell: cfg.FeedbackDwell})

	return &trainer{cat: cat, views: v, loop: loop, ctrl: ctrl}, nil
}

func newLogger(cfg config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
