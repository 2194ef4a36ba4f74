package main

import (
	"fmt"
	"os"

	"cosmic-playground/internal/audio"
	"cosmic-playground/internal/commands"
	"cosmic-playground/internal/config"
	"cosmic-playground/internal/debug"
	"cosmic-playground/internal/engineconfig"
	"cosmic-playground/internal/env"
	"cosmic-playground/internal/graphics"
	"cosmic-playground/internal/logger"
	"cosmic-playground/internal/playground"
	"cosmic-playground/internal/random"
	"cosmic-playground/internal/scene"
	"cosmic-playground/internal/shapes"
	"cosmic-playground/internal/terminal"
	"cosmic-playground/internal/ui"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	log := logger.New()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Logf("config: %v (using defaults)", err)
	}
	if seed, err := env.Int64(env.SeedVar, cfg.Seed); err != nil {
		log.Logf("seed: %v", err)
	} else {
		cfg.Seed = seed
	}

	prefs, err := engineconfig.Open()
	if err != nil {
		log.Logf("prefs: %v (not persisted)", err)
	}

	pg, err := playground.New(cfg, playground.Deps{Log: log})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer pg.Close()

	player := audio.NewPlayer(random.New(cfg.Seed))
	if err := player.Init(); err != nil {
		log.Logf("audio: %v (sound off)", err)
	}
	defer player.Close()
	pg.AddDestroyListener(player)

	scn := scene.New()
	scn.ParticleSize = cfg.Particles.Size
	h := &host{Playground: pg, prefs: prefs, dbg: debug.New(), scn: scn, audio: player}
	h.apply(prefs.Prefs())

	overlay := ui.New()
	if err := overlay.LoadCSS(ui.DefaultCSSPath); err != nil {
		log.Logf("ui: %v", err)
	}
	sc := cfg.Shapes
	panel := ui.NewAddPanel(sc.DefaultColor, sc.Palette, sc.DefaultScale, sc.MinAddScale, sc.MaxAddScale)
	inspector := ui.NewInspector()
	var (
		nodes   []*ui.Node
		hover   shapes.View
		hovered bool
	)

	reg := commands.NewRegistry()
	commands.RegisterBuiltins(reg, h, log)
	term := terminal.New(log, reg)

	update := func(dt float32) {
		term.Update()
		if !term.IsOpen() {
			scn.HandleInput(pg.Frame(), pg)
			if err := panel.HandleInput(pg); err != nil {
				log.Log(err.Error())
			}
		}
		pg.Tick(dt)
		hover, hovered = scn.Hovered(pg.Frame())
	}
	draw := func() {
		scn.Draw(pg.Frame(), pg.Bursts())
		nodes = nodes[:0]
		if h.Prefs().Overlay {
			nodes = panel.AppendNodes(nodes)
			nodes = inspector.AppendNodes(nodes, hover, hovered)
		}
		overlay.SetNodes(nodes)
		overlay.Draw()
		term.Draw()
		h.dbg.Draw(pg.Stats())
	}
	graphics.Run(update, draw, scn.Unload)
}
