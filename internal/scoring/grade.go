package scoring

// Tier is the coarse color bucket for a total score.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierOrange Tier = "orange"
	TierRed    Tier = "red"
)

// LetterGrade maps a total to A-F.
func LetterGrade(total int) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 80:
		return "B"
	case total >= 70:
		return "C"
	case total >= 60:
		return "D"
	default:
		return "F"
	}
}

// Label maps a total to a readiness label.
func Label(total int) string {
	switch {
	case total >= 80:
		return "Excellent"
	case total >= 70:
		return "Ready"
	case total >= 50:
		return "Needs Work"
	case total >= 30:
		return "Draft"
	default:
		return "Incomplete"
	}
}

// ColorTier maps a total to a color bucket.
func ColorTier(total int) Tier {
	switch {
	case total >= 70:
		return TierGreen
	case total >= 50:
		return TierYellow
	case total >= 30:
		return TierOrange
	default:
		return TierRed
	}
}
