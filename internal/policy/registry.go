package policy

import (
	"fmt"
	"sort"
)

const (
	GrowAdditive = "additive"
	ShrinkReset  = "reset"
)

// Descriptor documents a registered adjustment for listings.
type Descriptor struct {
	Name        string
	Kind        string // "grow" or "shrink"
	Description string
}

var growers = map[string]GrowFunc{
	GrowAdditive: AdditiveGrow,
}

var shrinkers = map[string]ShrinkFunc{
	ShrinkReset: ResetShrink,
}

var growDescriptions = map[string]string{
	GrowAdditive: "Add period_increment after every suppressed tick, capped at max_period.",
}

var shrinkDescriptions = map[string]string{
	ShrinkReset: "Jump back to min_period after every transmission.",
}

// Lookup resolves grow and shrink names. Empty names select the defaults.
func Lookup(grow, shrink string) (Policy, error) {
	p := Default()
	if grow != "" {
		fn, ok := growers[grow]
		if !ok {
			return Policy{}, fmt.Errorf("unknown grow policy %q", grow)
		}
		p.GrowName, p.Grow = grow, fn
	}
	if shrink != "" {
		fn, ok := shrinkers[shrink]
		if !ok {
			return Policy{}, fmt.Errorf("unknown shrink policy %q", shrink)
		}
		p.ShrinkName, p.Shrink = shrink, fn
	}
	return p, nil
}

func IsGrow(name string) bool {
	_, ok := growers[name]
	return ok
}

func IsShrink(name string) bool {
	_, ok := shrinkers[name]
	return ok
}

// Descriptors lists every registered adjustment, grow before shrink, sorted by name.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(growers)+len(shrinkers))
	for name := range growers {
		out = append(out, Descriptor{Name: name, Kind: "grow", Description: growDescriptions[name]})
	}
	for name := range shrinkers {
		out = append(out, Descriptor{Name: name, Kind: "shrink", Description: shrinkDescriptions[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == "grow"
		}
		return out[i].Name < out[j].Name
	})
	return out
}
