package wellness

type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandBuilding  Band = "building"
	BandStarting  Band = "starting"
)

// BandFor is a step function over the thresholds 80, 60 and 40.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandBuilding
	default:
		return BandStarting
	}
}

func (b Band) Message() string {
	switch b {
	case BandExcellent:
		return "Excellent wellness habits! 🌟"
	case BandGood:
		return "Good progress on your wellness journey! 🌱"
	case BandBuilding:
		return "Keep building those healthy habits! 💪"
	default:
		return "Let's start with small steps today! 🌸"
	}
}
