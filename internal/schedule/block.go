// Package schedule decides when the agent runs and how much it does.
//
// Schedule blocks are evaluated against the local hour of the configured
// timezone. Blocks may wrap past midnight, either explicitly through
// WrapsMidnight or through the legacy 48-hour notation where hours 24-47
// stand for the early hours of the following day.
package schedule

// Rand is the source of randomness used by schedule decisions.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Block is a time window with an associated trigger probability.
type Block struct {
	Start         int     `mapstructure:"start" json:"start" yaml:"start" toml:"start" validate:"min=0,max=47"`
	End           int     `mapstructure:"end" json:"end" yaml:"end" toml:"end" validate:"min=0,max=47"`
	Probability   float64 `mapstructure:"probability" json:"probability" yaml:"probability" toml:"probability" validate:"min=0,max=1"`
	Description   string  `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	WrapsMidnight bool    `mapstructure:"wraps_midnight" json:"wraps_midnight,omitempty" yaml:"wraps_midnight,omitempty" toml:"wraps_midnight,omitempty"`

	// Desc is the legacy spelling of Description.
	Desc string `mapstructure:"desc" json:"-" yaml:"-" toml:"-"`
}

// earlyHours is the number of hours after midnight that the 48-hour
// notation writes as 24-27.
const earlyHours = 4

// Normalize folds a block that crosses midnight onto a 24-hour clock with
// WrapsMidnight set, keeping exactly the hours the 48-hour notation covers.
// A block that starts after it ends also wraps. Other blocks keep their
// values.
//
//	{22, 27} -> {22, 3, wraps}
//	{9, 33}  -> {9, 3, wraps}
//	{2, 26}  -> {4, 2, wraps}
func (b Block) Normalize() Block {
	n := b
	if n.Description == "" {
		n.Description = n.Desc
	}
	n.Desc = ""
	switch {
	case n.WrapsMidnight:
		n.Start %= 24
		n.End %= 24
	case n.Start < 24 && n.End < n.Start:
		n.WrapsMidnight = true
	case n.Start < 24 && n.End >= 24:
		n.Start = max(n.Start, earlyHours)
		n.End = min(n.End-24, earlyHours-1)
		n.WrapsMidnight = true
	}
	return n
}

// Contains reports whether hour (0-23) falls inside the block. Both ends are
// inclusive. Outside wrapping blocks, hours before 04:00 are read on the
// 48-hour scale, so {24, 27} covers 00:00-03:59 and {0, 8} covers only
// 04:00-08:59.
func (b Block) Contains(hour int) bool {
	n := b.Normalize()
	if n.WrapsMidnight {
		return hour >= n.Start || hour <= n.End
	}
	if hour < earlyHours {
		hour += 24
	}
	return n.Start <= hour && hour <= n.End
}

// Decision is the outcome of a schedule check.
type Decision struct {
	Run     bool
	Matched bool
	Block   Block
	Roll    float64
}

// ShouldRun scans blocks in listed order. The first block containing hour
// draws exactly one roll and decides the outcome; a failed roll does not
// fall through to later blocks. No match means no draw and no run.
func ShouldRun(blocks []Block, hour int, rng Rand) Decision {
	for _, b := range blocks {
		if !b.Contains(hour) {
			continue
		}
		roll := rng.Float64()
		return Decision{
			Run:     roll < b.Probability,
			Matched: true,
			Block:   b.Normalize(),
			Roll:    roll,
		}
	}
	return Decision{}
}
