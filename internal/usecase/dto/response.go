package dto

import (
	"encoding/json"

	"github.com/journey-planner/internal/domain"
)

// SearchStateResponse - состояние поиска маршрутов
type SearchStateResponse struct {
	FromQ   string          `json:"from_q"`
	ToQ     string          `json:"to_q"`
	Results json.RawMessage `json:"results" swaggertype:"array,object"`
	Loading bool            `json:"loading"`
	Error   interface{}     `json:"error"`
}

// NewSearchStateResponse converts a store snapshot for the wire.
func NewSearchStateResponse(st domain.SearchState) SearchStateResponse {
	results := st.Results
	if len(results) == 0 {
		results = domain.EmptyResults()
	}
	return SearchStateResponse{
		FromQ:   st.FromQ,
		ToQ:     st.ToQ,
		Results: results,
		Loading: st.Loading,
		Error:   st.Error,
	}
}
