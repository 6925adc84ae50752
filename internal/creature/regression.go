package creature

// Graceful stage decay: a few missed days cost nothing, then one stage is
// lost per two further missed days. The result is display-only — it is never
// written back into the true streak.
const (
	// regressionGraceDays is how many consecutive missed days are free.
	regressionGraceDays = 4

	// missedDaysPerStageLost is the decay rate beyond the grace window.
	missedDaysPerStageLost = 2

	// regressionFloorOrder is the lowest stage regression can reach once a
	// creature has grown past it (baby).
	regressionFloorOrder = 2
)

// EffectiveStreak returns the regression-adjusted streak used to pick the
// displayed stage. Eternal creatures never regress; inside the grace window
// the true streak passes through unchanged. Beyond it, the streak is mapped
// to its stage, stages are subtracted, floored at baby, and the resulting
// stage's minimum streak comes back.
func EffectiveStreak(currentStreak, consecutiveMissedDays int, eternal bool) int {
	if eternal {
		return currentStreak
	}
	if consecutiveMissedDays <= regressionGraceDays {
		return currentStreak
	}

	regressionDays := consecutiveMissedDays - regressionGraceDays
	stagesToLose := (regressionDays + missedDaysPerStageLost - 1) / missedDaysPerStageLost

	order := stageIndex(currentStreak) - stagesToLose
	if order < regressionFloorOrder {
		order = regressionFloorOrder
	}
	// Never regress *up*: a creature still below baby keeps its real stage.
	if own := stageIndex(currentStreak); order > own {
		order = own
	}
	return stageAt(order).MinStreak
}
