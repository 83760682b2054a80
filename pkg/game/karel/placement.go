package karel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"karelworld/pkg/engine/world"
)

// Placement is a robot to add before any task runs, written on the command
// line as "street,avenue[,direction[,color]]". Direction defaults to East.
type Placement struct {
	Street    int
	Avenue    int
	Direction world.Direction
	Color     world.Color
}

// ParsePlacement reads one "street,avenue[,direction[,color]]" value
func ParsePlacement(s string) (Placement, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 4 {
		return Placement{}, fmt.Errorf("robot %q: want street,avenue[,direction[,color]]", s)
	}
	p := Placement{Direction: world.East}
	var err error
	if p.Street, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return Placement{}, fmt.Errorf("robot %q: street: %w", s, err)
	}
	if p.Avenue, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return Placement{}, fmt.Errorf("robot %q: avenue: %w", s, err)
	}
	if len(parts) > 2 {
		if p.Direction, err = world.ParseDirection(parts[2]); err != nil {
			return Placement{}, fmt.Errorf("robot %q: %w", s, err)
		}
	}
	if len(parts) > 3 {
		if p.Color, err = world.ParseColor(parts[3]); err != nil {
			return Placement{}, fmt.Errorf("robot %q: %w", s, err)
		}
	}
	return p, nil
}

func (p Placement) String() string {
	return fmt.Sprintf("%d,%d,%s,%s", p.Street, p.Avenue, p.Direction, p.Color)
}

// Placements collects repeated -robot flags
type Placements []Placement

func (ps *Placements) String() string {
	if ps == nil {
		return ""
	}
	out := make([]string, len(*ps))
	for i, p := range *ps {
		out[i] = p.String()
	}
	return strings.Join(out, " ")
}

// Set implements flag.Value
func (ps *Placements) Set(s string) error {
	p, err := ParsePlacement(s)
	if err != nil {
		return err
	}
	*ps = append(*ps, p)
	return nil
}

// Place adds every robot in ps to w
func (ps Placements) Place(ctx context.Context, w *World) error {
	for _, p := range ps {
		if _, err := w.AddRobot(ctx, p.Street, p.Avenue, p.Direction, p.Color); err != nil {
			return fmt.Errorf("robot %s: %w", p, err)
		}
	}
	return nil
}
