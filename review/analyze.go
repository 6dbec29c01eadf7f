package review

import "strings"

// InstructionAnalysis scores a set of agent instructions on three
// axes, each 0-100, with recommendations for whatever scored low.
type InstructionAnalysis struct {
	Clarity         float64  `json:"clarity_score"`
	Specificity     float64  `json:"specificity_score"`
	Completeness    float64  `json:"completeness_score"`
	Recommendations []string `json:"recommendations,omitempty"`
}

var directiveKeywords = []string{"must", "should", "always", "never", "if", "when", "then"}

// AnalyzeInstructions runs offline heuristics over instruction lines.
// No model call is involved; scores come from length, directive
// density, and whether the lines cover role, goals, and constraints.
func AnalyzeInstructions(instructions []string) InstructionAnalysis {
	var a InstructionAnalysis
	if len(instructions) == 0 {
		a.Recommendations = append(a.Recommendations,
			"Add instructions to guide agent behavior")
		return a
	}

	total := 0
	for _, inst := range instructions {
		total += len(inst)
	}
	switch avg := float64(total) / float64(len(instructions)); {
	case avg > 50:
		a.Clarity = 80
	case avg > 20:
		a.Clarity = 60
	default:
		a.Clarity = 40
		a.Recommendations = append(a.Recommendations,
			"Instructions are too brief - add more detail")
	}

	directives := 0
	for _, inst := range instructions {
		lower := strings.ToLower(inst)
		for _, kw := range directiveKeywords {
			if strings.Contains(lower, kw) {
				directives++
			}
		}
	}
	a.Specificity = min(100, float64(directives)*20)
	if a.Specificity < 40 {
		a.Recommendations = append(a.Recommendations,
			`Add more specific directives (e.g., "must", "should", "when")`)
	}

	hasRole := containsAny(instructions, "you are", "your role")
	hasGoals := containsAny(instructions, "goal", "objective")
	hasConstraints := containsAny(instructions, "do not", "never")
	factors := 0
	for _, ok := range []bool{hasRole, hasGoals, hasConstraints} {
		if ok {
			factors++
		}
	}
	a.Completeness = float64(factors) / 3 * 100

	if !hasRole {
		a.Recommendations = append(a.Recommendations, "Define the agent's role clearly")
	}
	if !hasGoals {
		a.Recommendations = append(a.Recommendations, "Specify clear goals or objectives")
	}
	if !hasConstraints {
		a.Recommendations = append(a.Recommendations,
			"Add constraints or boundaries for agent behavior")
	}
	return a
}

func containsAny(instructions []string, phrases ...string) bool {
	for _, inst := range instructions {
		lower := strings.ToLower(inst)
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
	}
	return false
}
