package main

import (
	"cosmic-playground/internal/audio"
	"cosmic-playground/internal/debug"
	"cosmic-playground/internal/engineconfig"
	"cosmic-playground/internal/playground"
	"cosmic-playground/internal/scene"
)

// host is the command target: the playground plus the prefs-driven overlays.
type host struct {
	*playground.Playground
	prefs *engineconfig.Store
	dbg   *debug.Debug
	scn   *scene.Scene
	audio *audio.Player
}

func (h *host) Prefs() engineconfig.EnginePrefs {
	return h.prefs.Prefs()
}

// UpdatePrefs applies the change on screen even when saving it fails.
func (h *host) UpdatePrefs(fn func(p *engineconfig.EnginePrefs)) error {
	err := h.prefs.Update(fn)
	h.apply(h.prefs.Prefs())
	return err
}

func (h *host) apply(p engineconfig.EnginePrefs) {
	h.dbg.SetShowFPS(p.ShowFPS)
	h.dbg.SetShowMemAlloc(p.ShowMemAlloc)
	h.scn.SetGridVisible(p.GridVisible)
	h.audio.SetMuted(p.Muted)
}
