package assistant

// ExplainRequest is the JSON body for POST /assistant/explain. Prompt is
// optional; when empty the default explain prompt for the session's last
// calculation is used.
type ExplainRequest struct {
	Prompt string `json:"prompt,omitempty"`
}

// SolveRequest is the JSON body for POST /assistant/solve.
type SolveRequest struct {
	Question string `json:"question"`
}

// AnswerResponse carries the model's text back verbatim.
type AnswerResponse struct {
	Answer string `json:"answer"`
}
