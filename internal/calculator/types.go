package calculator

// CalcRequest is the JSON body for all calculator operations.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for a successful calculation.
type CalcResponse struct {
	Operation  string  `json:"operation"`
	A          float64 `json:"a"`
	B          float64 `json:"b"`
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

// HistoryEntry is one past calculation as rendered in history responses.
type HistoryEntry struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

// HistoryResponse is the JSON response for GET /calculator/history,
// most recent first.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}
