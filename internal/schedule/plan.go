package schedule

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Draw returns a uniform value in [Min, Max].
func (r Range) Draw(rng Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

var (
	// PrimaryWindow covers waking hours, 09:00 through 03:59.
	PrimaryWindow = Block{Start: 9, End: 3, WrapsMidnight: true, Description: "primary"}

	HeavyLoad = Range{Min: 5, Max: 15}
	LightLoad = Range{Min: 1, Max: 3}
)

// PlanOperationCount decides how many operations a session performs:
// HeavyLoad inside PrimaryWindow, LightLoad otherwise.
func PlanOperationCount(hour int, rng Rand) int {
	if PrimaryWindow.Contains(hour) {
		return HeavyLoad.Draw(rng)
	}
	return LightLoad.Draw(rng)
}
