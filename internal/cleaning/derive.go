package cleaning

// Age group bucket labels, in bucket order.
const (
	AgeGroupChild  = "Child (0-18)"
	AgeGroupAdult  = "Adult (19-40)"
	AgeGroupMiddle = "Middle (41-60)"
	AgeGroupSenior = "Senior (61+)"
)

// AgeGroupOrder lists the buckets in ascending age order, used for sorted
// categorical output.
var AgeGroupOrder = []string{AgeGroupChild, AgeGroupAdult, AgeGroupMiddle, AgeGroupSenior}

// AgeGroup buckets an age into its fixed right-closed interval. The lowest
// edge is inclusive. Ages outside [0, 200] have no bucket.
func AgeGroup(age float64) (string, bool) {
	switch {
	case age >= 0 && age <= 18:
		return AgeGroupChild, true
	case age > 18 && age <= 40:
		return AgeGroupAdult, true
	case age > 40 && age <= 60:
		return AgeGroupMiddle, true
	case age > 60 && age <= 200:
		return AgeGroupSenior, true
	default:
		return "", false
	}
}
