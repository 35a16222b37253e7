package conway

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
)

// maxScriptSteps bounds seed-script execution so a runaway loop fails at
// startup instead of hanging it.
const maxScriptSteps = 50_000_000

// ScriptResult is the world a seed script painted, plus the rulestring it
// chose, if any.
type ScriptResult struct {
	World *World
	Rule  string
}

// RunScriptFile reads and executes a Starlark seed script.
func RunScriptFile(path string) (ScriptResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return ScriptResult{}, fmt.Errorf("conway: read script: %w", err)
	}
	return RunScript(filepath.Base(path), src)
}

// RunScript executes a Starlark seed script against a fresh world. The
// script paints cells through these builtins:
//
//	set(x, y)                       mark a cell alive
//	unset(x, y)                     mark a cell dead
//	toggle(x, y)                    flip a cell, returns its new state
//	alive(x, y)                     query a cell
//	box(x0, y0, x1, y1)             fill a rectangle, corners in any order
//	line(x0, y0, x1, y1)            draw a cell line
//	stamp(text, x, y)               stamp an RLE or plaintext pattern
//	random_fill(x0, y0, x1, y1, density, seed=0)
//	rule(s)                         choose the rulestring for the run
//	population()                    live-cell count so far
//
// print() output goes to the process log.
func RunScript(name string, src []byte) (ScriptResult, error) {
	res := ScriptResult{World: NewWorld()}
	w := res.World

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("conway: script %s: %s", name, msg)
		},
	}
	thread.SetMaxExecutionSteps(maxScriptSteps)

	globals := starlark.StringDict{
		"set":   cellBuiltin("set", w.Set),
		"unset": cellBuiltin("unset", w.Unset),

		"toggle": starlark.NewBuiltin("toggle", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var x, y int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
				return nil, err
			}
			return starlark.Bool(w.Toggle(Point{X: x, Y: y})), nil
		}),

		"alive": starlark.NewBuiltin("alive", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var x, y int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
				return nil, err
			}
			return starlark.Bool(w.Alive(Point{X: x, Y: y})), nil
		}),

		"box": starlark.NewBuiltin("box", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var x0, y0, x1, y1 int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 4, &x0, &y0, &x1, &y1); err != nil {
				return nil, err
			}
			r := RegionOf(Point{X: x0, Y: y0}, Point{X: x1, Y: y1})
			for y := r.Min.Y; y <= r.Max.Y; y++ {
				for x := r.Min.X; x <= r.Max.X; x++ {
					w.Set(Point{X: x, Y: y})
				}
			}
			return starlark.None, nil
		}),

		"line": starlark.NewBuiltin("line", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var x0, y0, x1, y1 int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 4, &x0, &y0, &x1, &y1); err != nil {
				return nil, err
			}
			lineCells(Point{X: x0, Y: y0}, Point{X: x1, Y: y1}, w.Set)
			return starlark.None, nil
		}),

		"stamp": starlark.NewBuiltin("stamp", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var text string
			var x, y int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &text, &x, &y); err != nil {
				return nil, err
			}
			p, err := ParsePattern([]byte(text))
			if err != nil {
				return nil, err
			}
			p.AppendTo(w, Point{X: x, Y: y})
			return starlark.None, nil
		}),

		"random_fill": starlark.NewBuiltin("random_fill", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var x0, y0, x1, y1 int
			var density float64
			var seed int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs,
				"x0", &x0, "y0", &y0, "x1", &x1, "y1", &y1,
				"density", &density, "seed?", &seed); err != nil {
				return nil, err
			}
			if density < 0 || density > 1 {
				return nil, fmt.Errorf("random_fill: density %g outside [0, 1]", density)
			}
			rng := rand.New(rand.NewSource(int64(seed)))
			r := RegionOf(Point{X: x0, Y: y0}, Point{X: x1, Y: y1})
			for y := r.Min.Y; y <= r.Max.Y; y++ {
				for x := r.Min.X; x <= r.Max.X; x++ {
					if rng.Float64() < density {
						w.Set(Point{X: x, Y: y})
					}
				}
			}
			return starlark.None, nil
		}),

		"rule": starlark.NewBuiltin("rule", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var s string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
				return nil, err
			}
			if _, err := ParseRule(s); err != nil {
				return nil, err
			}
			res.Rule = s
			return starlark.None, nil
		}),

		"population": starlark.NewBuiltin("population", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.MakeInt(w.Population()), nil
		}),
	}

	if _, err := starlark.ExecFile(thread, name, src, globals); err != nil {
		return ScriptResult{}, fmt.Errorf("conway: script %s: %w", name, err)
	}
	return res, nil
}

func cellBuiltin(name string, fn func(Point)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x, y int
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
			return nil, err
		}
		fn(Point{X: x, Y: y})
		return starlark.None, nil
	})
}

// lineCells walks the Bresenham line from a to b inclusive.
func lineCells(a, b Point, fn func(Point)) {
	dx, dy := iabs(b.X-a.X), -iabs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for {
		fn(a)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
