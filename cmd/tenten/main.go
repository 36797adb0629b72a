package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/debugui"
	debugui_ebiten "github.com/plus3/tenten/debugui/ebiten"
	"github.com/plus3/tenten/render/animated"
	"github.com/plus3/tenten/session"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML tuning file. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Seed for the piece supplier. Zero picks a random seed.")
	fade := flag.Duration("fade", animated.DefaultFade, "Length of the line clear animation.")
	verbose := flag.Bool("v", false, "Log every move.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if !*verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	backend := debugui_ebiten.NewImguiBackend("tenten", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	renderer := animated.New(*fade)
	opts := []session.Option{session.WithLogger(logger), session.WithRenderer(renderer)}
	if *seed != 0 {
		opts = append(opts, session.WithSeed(*seed))
	}

	table := Table{
		Session:  session.New(cfg, opts...),
		Renderer: renderer,
		Log:      logger,
	}
	storage, scheduler := newWorld(table, cfg.Supply.BatchSize, ebitenInput{})
	debugui.Spawn(storage, table.Session, debugui.DefaultPanels(scheduler)...)

	game := NewGame(storage, scheduler, backend)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
