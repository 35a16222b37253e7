// Package conway implements Conway's Game of Life on an unbounded board,
// rendered with [Ebitengine].
//
// Simulation and rendering are decoupled: an [Updater] goroutine owns the
// live [World] and publishes immutable [Generation] snapshots, while the
// [Game] host polls for the newest one each tick and draws it through a
// grid-to-NDC [Projection].
//
// # Quick start
//
// The cmd/conway binary wires everything together; embedding the engine
// yourself takes a handful of lines:
//
//	cfg := conway.DefaultConfig()
//	rule, _ := conway.ParseRule(cfg.Rule)
//	proj, _ := cfg.Projection.Projection()
//
//	seed := conway.NewWorld()
//	// ... stamp a pattern ...
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	updater := conway.NewUpdater(ctx, seed, rule, cfg.GensPerSec, true)
//
//	view := conway.NewView(proj, cfg.View)
//	if err := ebiten.RunGame(conway.NewGame(cfg, view, updater)); err != nil {
//		log.Fatal(err)
//	}
//
// # Coordinates
//
// Cells live at integer grid coordinates with y pointing up. [Projection]
// maps grid space to normalized device coordinates, carrying the zoom
// factor in the w component, so a larger zoom shows more of the board.
// [View] layers panning, cursor-anchored zooming, and gween tweens on
// top and converts both ways between cells and screen pixels.
//
// # Worlds and rules
//
// [World] is a quadtree over the unbounded board: sparse patterns cost
// memory proportional to their live cells, not their extent. [Rule]
// parses B/S rulestrings ("B3/S23", "B36/S23", ...) and steps a world
// into a fresh one, which is what lets the updater publish snapshots
// without copying.
//
// # Patterns
//
// Seeds come from RLE files ([ParseRLE]), plaintext files
// ([ParsePlaintext]), Starlark scripts ([RunScript]), or a saved
// [Session]. [EncodeRLE] writes worlds back out.
//
// [Ebitengine]: https://ebitengine.org
package conway
