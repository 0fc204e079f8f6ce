package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/bizpanel/internal/app"
	"github.com/iburimskiy/bizpanel/internal/chime"
	"github.com/iburimskiy/bizpanel/internal/config"
	"github.com/iburimskiy/bizpanel/internal/game"
	"github.com/iburimskiy/bizpanel/internal/logging"
	"github.com/iburimskiy/bizpanel/internal/store"
	"github.com/iburimskiy/bizpanel/internal/store/memory"
	"github.com/iburimskiy/bizpanel/internal/store/sqlite"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		fatal(log, "invalid configuration", err)
	}

	st, err := openStore(cfg, log)
	if err != nil {
		fatal(log, "open store", err)
	}
	defer st.Close()

	player := chime.NewPlayer(config.ChimeSampleRate, cfg.Sound, logging.Component(log, "chime"))
	party := game.NewCelebration(player, logging.Component(log, "celebrate"))

	a := app.New(st, party, app.WithLogger(logging.Component(log, "app")))
	ctx := context.Background()
	if err := a.SignIn(ctx, cfg.User); err != nil {
		fatal(log, "sign in", err)
	}
	if cfg.SeedDemo {
		if err := a.SeedDemo(ctx); err != nil {
			fatal(log, "seed demo data", err)
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("bizpanel - Tab: switch view, Enter: action, C: celebrate, Esc/Q: Quit")

	g := game.New(a, party, logging.Component(log, "ui"))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(log, "run", err)
	}
	a.SignOut()
}

func openStore(cfg *config.Config, log logrus.FieldLogger) (store.Store, error) {
	if cfg.DBPath == "" {
		log.Info("using in-memory store")
		return memory.New(), nil
	}
	s, err := sqlite.Open(cfg.DBPath, logging.Component(log, "sqlite"))
	if err != nil {
		return nil, fmt.Errorf("sqlite %s: %w", cfg.DBPath, err)
	}
	return s, nil
}

func fatal(log logrus.FieldLogger, msg string, err error) {
	log.WithError(err).Error(msg)
	_ = zenity.Error(fmt.Sprintf("%s: %v", msg, err), zenity.Title("bizpanel"))
	os.Exit(1)
}
