package scheduling

import "fmt"

// Duration model constants, in seconds. The per-package rate and the palette
// penalty come from the receiving-floor calculator; each worker beyond the
// first credits a fixed team bonus against the total.
const (
	SecondsPerPackage     = 40
	PalettePenaltySeconds = 20 * 60
	TeamBonusSeconds      = 30 * 60
)

// Quick-variant constants. The rough planning screen used a higher
// per-package rate with a flat load factor and no team or palette
// adjustment.
const (
	quickSecondsPerPackage = 42
	quickLoadFactor        = 1.2
)

// Estimate is a computed task duration with its display breakdown.
type Estimate struct {
	TotalSeconds int
	Hours        int
	Minutes      int
	Seconds      int
}

// EstimateDuration computes the canonical task duration from the package
// count, assigned team size, and palette condition. Negative inputs coerce
// to their floor values and the result never goes below zero.
func EstimateDuration(packageCount, teamSize int, paletteGood bool) Estimate {
	if packageCount < 0 {
		packageCount = 0
	}
	if teamSize < 1 {
		teamSize = 1
	}

	total := packageCount * SecondsPerPackage
	if !paletteGood {
		total += PalettePenaltySeconds
	}
	total -= (teamSize - 1) * TeamBonusSeconds
	if total < 0 {
		total = 0
	}

	return newEstimate(total)
}

// EstimateQuick computes the legacy quick estimate used by the planning
// screen. It ignores team size and palette condition.
func EstimateQuick(packageCount int) Estimate {
	if packageCount < 0 {
		packageCount = 0
	}
	total := int(float64(packageCount*quickSecondsPerPackage) * quickLoadFactor)
	return newEstimate(total)
}

func newEstimate(totalSeconds int) Estimate {
	return Estimate{
		TotalSeconds: totalSeconds,
		Hours:        totalSeconds / 3600,
		Minutes:      (totalSeconds % 3600) / 60,
		Seconds:      totalSeconds % 60,
	}
}

// RequiredMinutes returns the duration rounded up to whole minutes, the
// granularity used for intervals and capacity checks.
func (e Estimate) RequiredMinutes() int {
	return (e.TotalSeconds + 59) / 60
}

// String renders the duration the way the calculator screens display it.
func (e Estimate) String() string {
	return fmt.Sprintf("%dh%dmin%ds", e.Hours, e.Minutes, e.Seconds)
}

// EndTime derives the interval end for a task starting at start. Intervals
// may not cross midnight: a duration that would wrap clamps to EndOfDay and
// wrapped is reported so callers can reject the task.
func (e Estimate) EndTime(start TimeOfDay) (end TimeOfDay, wrapped bool) {
	end = start.Add(e.RequiredMinutes())
	if end > EndOfDay {
		return EndOfDay, true
	}
	return end, false
}
