package dto

// SearchRequest - запрос на поиск маршрутов по свободному тексту
type SearchRequest struct {
	FromQ     string `json:"from_q" validate:"max=200"`
	ToQ       string `json:"to_q" validate:"max=200"`
	LastOfDay bool   `json:"last_of_day"`
}

// PlacesRequest - запрос на поиск мест
type PlacesRequest struct {
	Query string `json:"q" validate:"max=200"`
	Types string `json:"types" validate:"omitempty,max=100"`
	Count int    `json:"count" validate:"omitempty,min=1,max=50"`
}

// JourneysRequest - запрос маршрутов между известными точками
type JourneysRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=50"`
	Datetime string `json:"datetime" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Realtime *bool  `json:"realtime"`
}
