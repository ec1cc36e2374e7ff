package ai

import "strings"

var (
	mathKeywords = []string{
		"equation", "math", "algebra", "geometry", "calculate", "solve",
		"fraction", "integral", "derivative",
	}
	physicsKeywords = []string{
		"physics", "force", "energy", "velocity", "motion", "gravity",
		"acceleration", "momentum",
	}
	chemistryKeywords = []string{
		"chemistry", "chemical", "reaction", "element", "molecule",
		"acid", "compound",
	}
)

const (
	fallbackMath = "I can't reach the answer service right now. For math problems, a good start is to " +
		"write down what is given and what is asked, pick the rule or formula that connects them, and work " +
		"one step at a time, checking each step. A teacher will follow up with a complete answer shortly."

	fallbackPhysics = "I can't reach the answer service right now. For physics problems, start by listing " +
		"the known quantities with their units, identify what you need to find, and choose the formula that " +
		"relates them. A teacher will follow up with a complete answer shortly."

	fallbackChemistry = "I can't reach the answer service right now. For chemistry questions, it often helps " +
		"to write out the substances involved and balance the equation before anything else. A teacher will " +
		"follow up with a complete answer shortly."

	fallbackGeneric = "I couldn't generate an answer automatically right now. A teacher has been notified " +
		"and will get back to you with an answer soon."
)

// FallbackAnswer picks a canned response by keyword-matching the
// lowercased question. Purely local; never fails.
func FallbackAnswer(questionText string) string {
	q := strings.ToLower(questionText)

	for _, kw := range mathKeywords {
		if strings.Contains(q, kw) {
			return fallbackMath
		}
	}
	for _, kw := range physicsKeywords {
		if strings.Contains(q, kw) {
			return fallbackPhysics
		}
	}
	for _, kw := range chemistryKeywords {
		if strings.Contains(q, kw) {
			return fallbackChemistry
		}
	}
	return fallbackGeneric
}
