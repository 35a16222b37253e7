package conway

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Session is a saved run: camera placement, run state, rule, and the live
// cells, so a session file reopens exactly where it left off.
type Session struct {
	Camera     CameraState `yaml:"camera"`
	Running    bool        `yaml:"running"`
	Generation uint64      `yaml:"generation"`

	// Rule is the rulestring in effect; "" defers to the config.
	Rule string `yaml:"rule,omitempty"`

	// Cells holds the live cells as RLE, normalized to the origin; the
	// pattern's true top-left corner is (OriginX, OriginY).
	OriginX int    `yaml:"origin_x"`
	OriginY int    `yaml:"origin_y"`
	Cells   string `yaml:"cells"`
}

// CameraState is the persisted view placement. X and Y are the grid cell
// at the center of the screen. A Zoom of 0 or less defers to the config.
type CameraState struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

// SetWorld stores w's live cells into the session.
func (s *Session) SetWorld(w *World) {
	r, ok := w.Bounds()
	if !ok {
		s.OriginX, s.OriginY, s.Cells = 0, 0, ""
		return
	}
	s.OriginX, s.OriginY = r.Min.X, r.Min.Y
	p := PatternFromWorld(w, "")
	p.Rule = s.Rule
	s.Cells = string(EncodeRLE(p))
}

// World reconstructs the live cells stored in the session.
func (s Session) World() (*World, error) {
	w := NewWorld()
	if s.Cells == "" {
		return w, nil
	}
	p, err := ParseRLE([]byte(s.Cells))
	if err != nil {
		return nil, fmt.Errorf("conway: session cells: %w", err)
	}
	p.AppendTo(w, Point{X: s.OriginX, Y: s.OriginY})
	return w, nil
}

// SaveSession writes the session as YAML.
func SaveSession(path string, s Session) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("conway: write session: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&s); err != nil {
		return fmt.Errorf("conway: encode session: %w", err)
	}
	return enc.Close()
}

// LoadSession reads a session file. Decoding of the stored cells is
// deferred to Session.World, so callers see those errors where they
// matter.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("conway: read session: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("conway: parse session: %w", err)
	}
	if s.Rule != "" {
		if _, err := ParseRule(s.Rule); err != nil {
			return Session{}, err
		}
	}
	return s, nil
}
