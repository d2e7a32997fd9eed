package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/pitchperfect/internal/app"
	"github.com/abhisek/pitchperfect/internal/config"
	"github.com/abhisek/pitchperfect/internal/keyboard"
	"github.com/abhisek/pitchperfect/internal/logger"
	"github.com/abhisek/pitchperfect/internal/midiin"
	"github.com/abhisek/pitchperfect/internal/render/term"
	"github.com/abhisek/pitchperfect/internal/views"
)

// runApp wires the trainer and runs the controller loop, the MIDI watcher
// and the terminal UI until the UI exits.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	surfaces := term.New(views.ScreenWidth, views.ScreenHeight)
	tr, err := newTrainer(cfg, log, surfaces)
	if err != nil {
		return err
	}

	notifier := app.NewNotifier(app.DefaultRedrawDelay)
	tr.loop.AfterEach(func() { notifier.Notify(tr.ctrl.Status()) })
	model := app.New(tr.loop, surfaces, keyboard.New(cfg.Octave))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tr.loop.Run(gctx, tr.ctrl)
	})
	if cfg.MIDI {
		g.Go(func() error {
			watchMIDI(gctx, tr.loop, cfg, log)
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return app.Run(gctx, model, notifier)
	})

	return g.Wait()
}

// watchMIDI keeps a MIDI keyboard connected until ctx ends. A missing
// driver is logged and leaves the computer keyboard as the only input.
func watchMIDI(ctx context.Context, out midiin.Poster, cfg config.Config, log *logger.Logger) {
	opts := midiin.Options{}
	if cfg.MIDIDevice != "" {
		opts.Preferred = []string{cfg.MIDIDevice}
	}
	w, err := midiin.NewWatcher(out, opts, log)
	if err != nil {
		log.Warn("midi unavailable", "err", err)
		return
	}
	defer w.Close()

	ticker := time.NewTicker(midiin.RescanInterval / 2)
	defer ticker.Stop()
	w.Tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}
