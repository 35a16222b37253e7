package conway

import (
	"context"
	"time"
)

// Generation is one published simulation state. The World inside a
// Generation is never mutated after publishing, so consumers may read it
// from any goroutine without locking.
type Generation struct {
	World   *World
	Number  uint64
	Rule    Rule
	Running bool
}

type cmdKind int

const (
	cmdPause cmdKind = iota
	cmdResume
	cmdTogglePause
	cmdStepOnce
	cmdToggleCell
	cmdSetCell
	cmdClear
	cmdLoadWorld
	cmdSetRule
	cmdSetRate
)

type command struct {
	kind   cmdKind
	cell   Point
	alive  bool
	world  *World
	number uint64
	rule   Rule
	rate   float64
}

// Updater advances the simulation on its own goroutine at a fixed
// generation rate, decoupled from the render loop. Edits and transport
// controls arrive over a command channel; each resulting state goes out
// through a latest-value snapshot channel that Poll drains.
type Updater struct {
	cmds  chan command
	snaps chan Generation
	done  chan struct{}
}

// NewUpdater starts an updater goroutine seeded with a world, running
// until ctx is cancelled. The updater takes ownership of seed; pass nil
// for an empty board.
func NewUpdater(ctx context.Context, seed *World, rule Rule, gensPerSec float64, running bool) *Updater {
	if seed == nil {
		seed = NewWorld()
	}
	if gensPerSec <= 0 {
		gensPerSec = DefaultConfig().GensPerSec
	}
	u := &Updater{
		cmds:  make(chan command, 16),
		snaps: make(chan Generation, 1),
		done:  make(chan struct{}),
	}
	// The seed publishes as generation zero before any stepping, so a
	// consumer always sees the initial board.
	u.publish(Generation{World: seed, Number: 0, Rule: rule, Running: running})
	go u.run(ctx, seed, rule, gensPerSec, running)
	return u
}

func rateInterval(gensPerSec float64) time.Duration {
	return time.Duration(float64(time.Second) / gensPerSec)
}

func (u *Updater) run(ctx context.Context, seed *World, rule Rule, gensPerSec float64, running bool) {
	defer close(u.done)

	st := &simState{world: seed, rule: rule, running: running}
	ticker := time.NewTicker(rateInterval(gensPerSec))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-u.cmds:
			if cmd.kind == cmdSetRate {
				if cmd.rate > 0 {
					ticker.Reset(rateInterval(cmd.rate))
				}
				break
			}
			if st.apply(cmd) {
				u.publish(st.generation())
			}
		case <-ticker.C:
			if st.running {
				st.step()
				u.publish(st.generation())
			}
		}
	}
}

// publish replaces whatever snapshot is waiting with the newer one.
func (u *Updater) publish(g Generation) {
	for {
		select {
		case u.snaps <- g:
			return
		default:
			select {
			case <-u.snaps:
			default:
			}
		}
	}
}

// Poll returns the latest generation published since the previous call,
// without blocking.
func (u *Updater) Poll() (Generation, bool) {
	select {
	case g := <-u.snaps:
		return g, true
	default:
		return Generation{}, false
	}
}

// Done closes once the updater goroutine has exited.
func (u *Updater) Done() <-chan struct{} {
	return u.done
}

func (u *Updater) send(cmd command) {
	select {
	case u.cmds <- cmd:
	case <-u.done:
	}
}

// Pause stops the generation ticker from advancing the board.
func (u *Updater) Pause() { u.send(command{kind: cmdPause}) }

// Resume restarts stepping at the configured rate.
func (u *Updater) Resume() { u.send(command{kind: cmdResume}) }

// TogglePause flips between running and paused.
func (u *Updater) TogglePause() { u.send(command{kind: cmdTogglePause}) }

// StepOnce pauses the simulation and advances exactly one generation.
func (u *Updater) StepOnce() { u.send(command{kind: cmdStepOnce}) }

// ToggleCell flips one cell of the live board.
func (u *Updater) ToggleCell(p Point) { u.send(command{kind: cmdToggleCell, cell: p}) }

// SetCell paints one cell of the live board.
func (u *Updater) SetCell(p Point, alive bool) {
	u.send(command{kind: cmdSetCell, cell: p, alive: alive})
}

// Clear empties the board and resets the generation counter.
func (u *Updater) Clear() { u.send(command{kind: cmdClear}) }

// SetWorld replaces the board, numbering it generation. The updater
// takes ownership of w.
func (u *Updater) SetWorld(w *World, generation uint64) {
	if w == nil {
		w = NewWorld()
	}
	u.send(command{kind: cmdLoadWorld, world: w, number: generation})
}

// SetRule switches the birth/survival rule for subsequent generations.
func (u *Updater) SetRule(r Rule) { u.send(command{kind: cmdSetRule, rule: r}) }

// SetRate changes the generation rate. Non-positive rates are ignored.
func (u *Updater) SetRate(gensPerSec float64) { u.send(command{kind: cmdSetRate, rate: gensPerSec}) }

// --- Simulation state (updater goroutine only) ---

// simState owns the live board. Published worlds are shared with
// consumers and never touched again: stepping builds a fresh world, and
// editing commands copy before mutating.
type simState struct {
	world   *World
	rule    Rule
	number  uint64
	running bool
}

func (st *simState) generation() Generation {
	return Generation{World: st.world, Number: st.number, Rule: st.rule, Running: st.running}
}

func (st *simState) step() {
	st.world = st.rule.Step(st.world)
	st.number++
}

func (st *simState) mutable() *World {
	st.world = st.world.Snapshot()
	return st.world
}

// apply runs one command and reports whether the state changed in a way
// consumers can see.
func (st *simState) apply(cmd command) bool {
	switch cmd.kind {
	case cmdPause:
		if !st.running {
			return false
		}
		st.running = false
	case cmdResume:
		if st.running {
			return false
		}
		st.running = true
	case cmdTogglePause:
		st.running = !st.running
	case cmdStepOnce:
		st.running = false
		st.step()
	case cmdToggleCell:
		st.mutable().Toggle(cmd.cell)
	case cmdSetCell:
		w := st.mutable()
		if cmd.alive {
			w.Set(cmd.cell)
		} else {
			w.Unset(cmd.cell)
		}
	case cmdClear:
		st.world = NewWorld()
		st.number = 0
	case cmdLoadWorld:
		st.world = cmd.world
		st.number = cmd.number
	case cmdSetRule:
		st.rule = cmd.rule
	default:
		return false
	}
	return true
}
