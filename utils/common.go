package utils

const (
	// NODETOL is the absolute tolerance used to decide two nodes occupy the same location
	NODETOL = 1.e-12
	// InsideTol widens the closed unit interval used for barycentric containment
	InsideTol = 1.e-10
	// DegenerateTol scales the squared longest edge of an element to give the smallest
	// doubled area accepted as non-degenerate
	DegenerateTol = 1.e-10
)

type IndexBase uint8

const (
	ZeroBased IndexBase = iota
	OneBased
)

func (b IndexBase) Offset() int {
	if b == OneBased {
		return 1
	}
	return 0
}

func (b IndexBase) String() string {
	switch b {
	case ZeroBased:
		return "ZeroBased"
	case OneBased:
		return "OneBased"
	default:
		panic("unknown option")
	}
}
