package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/conway"
)

// defaultSeedRLE is the Gosper glider gun, stamped when no seed source
// is given on the command line.
const defaultSeedRLE = `#N Gosper glider gun
x = 36, y = 9, rule = B3/S23
24bo$22bobo$12b2o6b2o12b2o$11bo3bo4b2o12b2o$2o8bo5bo3b2o$2o8bo3bob2o4b
obo$10bo5bo7bo$11bo3bo$12b2o!`

// stampCentered stamps p into w with its bounding box centered on the
// origin, where the view starts.
func stampCentered(p conway.Pattern, w *conway.World) {
	r, ok := p.Bounds()
	if !ok {
		return
	}
	p.AppendTo(w, conway.Point{
		X: -r.Min.X - r.Width()/2,
		Y: -r.Min.Y - r.Height()/2,
	})
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	patternPath := flag.String("pattern", "", "seed pattern file, RLE or plaintext")
	scriptPath := flag.String("script", "", "Starlark seed script")
	sessionPath := flag.String("session", "", "session file to resume and to save with ctrl+S")
	ruleFlag := flag.String("rule", "", "B/S rulestring, overrides config and seed files")
	flag.Parse()

	cfg := conway.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = conway.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	ruleStr := cfg.Rule
	running := true
	var startGen uint64
	var camera conway.CameraState
	seed := conway.NewWorld()

	switch {
	case *sessionPath != "":
		s, err := conway.LoadSession(*sessionPath)
		if err != nil {
			log.Fatal(err)
		}
		seed, err = s.World()
		if err != nil {
			log.Fatal(err)
		}
		running = s.Running
		startGen = s.Generation
		camera = s.Camera
		if s.Rule != "" {
			ruleStr = s.Rule
		}
	case *patternPath != "":
		p, err := conway.LoadPatternFile(*patternPath)
		if err != nil {
			log.Fatal(err)
		}
		stampCentered(p, seed)
		if p.Rule != "" {
			ruleStr = p.Rule
		}
	case *scriptPath != "":
		res, err := conway.RunScriptFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		seed = res.World
		if res.Rule != "" {
			ruleStr = res.Rule
		}
	default:
		p, err := conway.ParseRLE([]byte(defaultSeedRLE))
		if err != nil {
			log.Fatal(err)
		}
		stampCentered(p, seed)
	}

	if *ruleFlag != "" {
		ruleStr = *ruleFlag
	}
	rule, err := conway.ParseRule(ruleStr)
	if err != nil {
		log.Fatal(err)
	}

	proj, err := cfg.Projection.Projection()
	if err != nil {
		log.Fatal(err)
	}
	view := conway.NewView(proj, cfg.View)
	view.Restore(camera)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updater := conway.NewUpdater(ctx, seed, rule, cfg.GensPerSec, running)
	if startGen > 0 {
		// Resume the generation count where the session left off.
		updater.SetWorld(seed, startGen)
	}

	g := conway.NewGame(cfg, view, updater)
	g.SessionPath = *sessionPath
	if g.SessionPath == "" {
		g.SessionPath = "session.yaml"
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	cancel()
	<-updater.Done()
}
