package tracker

// Plan is a workout recommendation tier derived from a daily step count.
type Plan struct {
	ActivityLevel string
	Intensity     string
	Duration      string
	Focus         string
}

// Step-count band boundaries. Each boundary belongs to the higher band:
// 2999 is low, 3000 is moderate, 7999 is moderate, 8000 is high.
const (
	moderateStepFloor = 3000
	highStepFloor     = 8000
)

// PlanFor maps a step count to its recommendation tier. It is total over all
// counts and deterministic: the three bands are contiguous and
// non-overlapping, so every count lands in exactly one.
func PlanFor(steps int64) Plan {
	switch {
	case steps < moderateStepFloor:
		return Plan{
			ActivityLevel: "low",
			Intensity:     "beginner",
			Duration:      "20-30 minutes",
			Focus:         "light cardio and mobility",
		}
	case steps < highStepFloor:
		return Plan{
			ActivityLevel: "moderate",
			Intensity:     "intermediate",
			Duration:      "30 minutes",
			Focus:         "fat burning workout",
		}
	default:
		return Plan{
			ActivityLevel: "high",
			Intensity:     "advanced",
			Duration:      "20 minutes",
			Focus:         "HIIT or strength training",
		}
	}
}
