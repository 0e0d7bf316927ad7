package models

// AgeGroups are the fixed histogram buckets, in display order.
var AgeGroups = []string{"0-17", "18-30", "31-45", "46-59", "60+"}

// AgeGroupBounds returns the inclusive age bounds for a bucket label.
// ok is false for unrecognized labels; callers ignore those rather than
// treating them as errors.
func AgeGroupBounds(label string) (lo, hi int, ok bool) {
	switch label {
	case "0-17":
		return 0, 17, true
	case "18-30":
		return 18, 30, true
	case "31-45":
		return 31, 45, true
	case "46-59":
		return 46, 59, true
	case "60+":
		return 60, 1<<31 - 1, true
	}
	return 0, 0, false
}

// AgeGroupFor returns the bucket label an age falls into
func AgeGroupFor(age int) string {
	switch {
	case age <= 17:
		return "0-17"
	case age <= 30:
		return "18-30"
	case age <= 45:
		return "31-45"
	case age <= 59:
		return "46-59"
	default:
		return "60+"
	}
}
