package diagnostic

import (
	"fmt"

	"nnx1/internal/model"
)

var tiers = []model.Tier{
	{
		Level:           1,
		Label:           "Level 1: Getting Started",
		Description:     "Every journey begins with a step.",
		LongDescription: "You've taken the first step! At this level, your business is just beginning to organize things.",
		Min:             0,
		Max:             30,
		Color:           model.ColorRed,
	},
	{
		Level:           2,
		Label:           "Level 2: Builder",
		Description:     "You're building a strong foundation!",
		LongDescription: "Now you're building a stronger system. You've started using tools to keep your work in place.",
		Min:             31,
		Max:             70,
		Color:           model.ColorYellow,
	},
	{
		Level:           3,
		Label:           "Level 3: Operator",
		Description:     "You're running a solid operation!",
		LongDescription: "You've got things running smoothly! Work is faster and more clear.",
		Min:             71,
		Max:             90,
		Color:           model.ColorBlue,
	},
	{
		Level:           4,
		Label:           "Level 4: Pro Optimizer",
		Description:     "You're among the best, keep optimizing!",
		LongDescription: "You're a pro now! Everything is organized, fast, and smart. You make better decisions because your data is clean.",
		Min:             91,
		Max:             100,
		Color:           model.ColorGreen,
	},
}

// Tiers returns the ordered tier table without next-tier fields.
func Tiers() []model.Tier {
	out := make([]model.Tier, len(tiers))
	copy(out, tiers)
	return out
}

// ClassifyTier maps a score in [0,100] to exactly one tier.
func ClassifyTier(score int) (model.Tier, error) {
	if score < MinScore || score > MaxScore {
		return model.Tier{}, fmt.Errorf("%w: score %d outside [%d,%d]", ErrInvalidInput, score, MinScore, MaxScore)
	}
	for i, t := range tiers {
		if score < t.Min || score > t.Max {
			continue
		}
		if i+1 < len(tiers) {
			next := tiers[i+1]
			points := next.Min - score
			label := next.Label
			t.PointsToNext = &points
			t.NextLabel = &label
		}
		return t, nil
	}
	// unreachable while the table covers [0,100]
	return model.Tier{}, fmt.Errorf("%w: no tier for score %d", ErrInvalidInput, score)
}

// ColorFor returns the progress bar color for a score.
func ColorFor(score int) model.ColorClass {
	switch {
	case score <= 30:
		return model.ColorRed
	case score <= 70:
		return model.ColorYellow
	case score <= 90:
		return model.ColorBlue
	default:
		return model.ColorGreen
	}
}
