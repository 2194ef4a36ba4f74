package commands

import (
	"errors"
	"fmt"
	"strconv"

	"cosmic-playground/internal/engineconfig"
	"cosmic-playground/internal/shapes"
)

// Host is what the built-in commands act on.
type Host interface {
	AddShape(typeName, color string, scale float32) (shapes.ID, error)
	DestroyShape(id shapes.ID) bool
	SetSlowMotion(on bool)
	SlowMotion() bool
	Shapes() []shapes.View
	// UpdatePrefs applies fn to the engine prefs, applies them and persists them.
	UpdatePrefs(fn func(p *engineconfig.EnginePrefs)) error
	Prefs() engineconfig.EnginePrefs
}

// Printer receives command output. logger.Logger satisfies it.
type Printer interface {
	Logf(format string, args ...any)
}

// ErrBadSwitch is returned when a toggle gets something other than on, off or nothing.
var ErrBadSwitch = errors.New("expected on or off")

// RegisterBuiltins registers add, destroy, list, slowmo, fps, memalloc, grid, mute and help.
func RegisterBuiltins(reg *Registry, host Host, out Printer) {
	addFS := NewFlagSet("add")
	addType := addFS.String("type", "Box", "Box, Sphere, Cylinder or Pyramid")
	addColor := addFS.String("color", "#ff69b4", "hex color")
	addScale := addFS.Float64("scale", 1, "uniform scale")
	addCount := addFS.Int("n", 1, "how many to add")
	reg.Register("add", "cmd add [-type Box] [-color #ff69b4] [-scale 1] [-n 1]", addFS, func() error {
		for i := 0; i < *addCount; i++ {
			id, err := host.AddShape(*addType, *addColor, float32(*addScale))
			if err != nil {
				return err
			}
			out.Logf("added #%d", id)
		}
		return nil
	})

	destroyFS := NewFlagSet("destroy")
	destroyAll := destroyFS.Bool("all", false, "destroy every shape")
	reg.Register("destroy", "cmd destroy <id>... | cmd destroy -all", destroyFS, func() error {
		if *destroyAll {
			n := 0
			for _, v := range host.Shapes() {
				if host.DestroyShape(v.ID) {
					n++
				}
			}
			out.Logf("destroyed %d shapes", n)
			return nil
		}
		if destroyFS.NArg() == 0 {
			return fmt.Errorf("destroy: missing shape id")
		}
		for _, arg := range destroyFS.Args() {
			n, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("destroy: bad id %q: %w", arg, err)
			}
			if !host.DestroyShape(shapes.ID(n)) {
				out.Logf("no shape #%d", n)
			}
		}
		return nil
	})

	listFS := NewFlagSet("list")
	reg.Register("list", "cmd list", listFS, func() error {
		views := host.Shapes()
		for _, v := range views {
			state := ""
			if v.Pending {
				state = " (destroyed)"
			}
			out.Logf("#%d %s %s x%.2f at (%.1f, %.1f, %.1f)%s", v.ID, v.Type, v.Color, v.Scale,
				v.Position[0], v.Position[1], v.Position[2], state)
		}
		out.Logf("%d shapes", len(views))
		return nil
	})

	slowFS := NewFlagSet("slowmo")
	reg.Register("slowmo", "cmd slowmo [on|off]", slowFS, func() error {
		on, err := parseSwitch(slowFS.Arg(0), host.SlowMotion())
		if err != nil {
			return fmt.Errorf("slowmo: %w", err)
		}
		host.SetSlowMotion(on)
		return nil
	})

	registerPref(reg, host, out, "fps", "FPS counter",
		func(p engineconfig.EnginePrefs) bool { return p.ShowFPS },
		func(p *engineconfig.EnginePrefs, v bool) { p.ShowFPS = v })
	registerPref(reg, host, out, "memalloc", "memory counter",
		func(p engineconfig.EnginePrefs) bool { return p.ShowMemAlloc },
		func(p *engineconfig.EnginePrefs, v bool) { p.ShowMemAlloc = v })
	registerPref(reg, host, out, "grid", "grid",
		func(p engineconfig.EnginePrefs) bool { return p.GridVisible },
		func(p *engineconfig.EnginePrefs, v bool) { p.GridVisible = v })
	registerPref(reg, host, out, "mute", "mute",
		func(p engineconfig.EnginePrefs) bool { return p.Muted },
		func(p *engineconfig.EnginePrefs, v bool) { p.Muted = v })
	registerPref(reg, host, out, "overlay", "add panel and inspector",
		func(p engineconfig.EnginePrefs) bool { return p.Overlay },
		func(p *engineconfig.EnginePrefs, v bool) { p.Overlay = v })

	helpFS := NewFlagSet("help")
	reg.Register("help", "cmd help", helpFS, func() error {
		for _, name := range reg.Names() {
			out.Logf("%s", reg.Usage(name))
		}
		return nil
	})
}

// registerPref registers a toggle command over one engine pref.
func registerPref(reg *Registry, host Host, out Printer, name, label string,
	get func(engineconfig.EnginePrefs) bool, set func(*engineconfig.EnginePrefs, bool)) {
	fs := NewFlagSet(name)
	reg.Register(name, "cmd "+name+" [on|off]", fs, func() error {
		on, err := parseSwitch(fs.Arg(0), get(host.Prefs()))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := host.UpdatePrefs(func(p *engineconfig.EnginePrefs) { set(p, on) }); err != nil {
			out.Logf("%s: %v", name, err)
		}
		out.Logf("%s %s", label, onOff(on))
		return nil
	})
}

// parseSwitch reads on/off; an empty argument flips current.
func parseSwitch(arg string, current bool) (bool, error) {
	switch arg {
	case "":
		return !current, nil
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w, got %q", ErrBadSwitch, arg)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
