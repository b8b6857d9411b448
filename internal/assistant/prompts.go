package assistant

import (
	"fmt"

	"smartcalc/internal/calc"
)

// ExplainPrompt builds the default prompt asking the model to walk through
// the given calculation step by step.
func ExplainPrompt(c calc.Calculation) string {
	return fmt.Sprintf(
		"Explain step by step how to compute %s to get %g. Use simple language for a beginner.",
		c.Expression, c.Result,
	)
}

// SolvePrompt builds the prompt for a free-form math question. The model is
// framed as a tutor so the answer includes both the number and the working.
func SolvePrompt(question string) string {
	return fmt.Sprintf(
		"You are a careful math tutor. Solve the following math question, "+
			"then give the final numeric answer and explain it step by step "+
			"in very simple language for a beginner.\n\nQuestion: %s",
		question,
	)
}
