package obstacle

import "github.com/milk9111/rollball/levels"

type Kind int

const (
	KindNone Kind = iota
	Ramp
	Seesaw
)

// Kinds lists every placeable kind in toolbox order.
var Kinds = []Kind{Ramp, Seesaw}

func (k Kind) String() string {
	switch k {
	case Ramp:
		return levels.KindRamp
	case Seesaw:
		return levels.KindSeesaw
	}
	return "none"
}

func ParseKind(s string) (Kind, bool) {
	switch s {
	case levels.KindRamp:
		return Ramp, true
	case levels.KindSeesaw:
		return Seesaw, true
	}
	return KindNone, false
}

// Rotatable reports whether a ghost of this kind accepts rotation keys. A
// placed seesaw rotates its plank instead.
func (k Kind) Rotatable() bool {
	return k == Ramp
}
