package client

// Set is a catalog set as returned by GET /sets.
type Set struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Series       string    `json:"series"`
	PrintedTotal int       `json:"printedTotal"`
	Total        int       `json:"total"`
	ReleaseDate  string    `json:"releaseDate"`
	UpdatedAt    string    `json:"updatedAt"`
	Images       SetImages `json:"images"`
}

type SetImages struct {
	Symbol string `json:"symbol"`
	Logo   string `json:"logo"`
}

// Card is a raw catalog card before edition expansion.
type Card struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Supertype string     `json:"supertype"`
	Subtypes  []string   `json:"subtypes"`
	Types     []string   `json:"types"`
	Number    string     `json:"number"`
	Rarity    string     `json:"rarity"`
	Images    CardImages `json:"images"`
	Set       SetRef     `json:"set"`
	TCGPlayer *TCGPlayer `json:"tcgplayer,omitempty"`
}

type CardImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type SetRef struct {
	ID string `json:"id"`
}

// TCGPlayer carries the marketplace price buckets keyed by variant.
type TCGPlayer struct {
	URL       string               `json:"url"`
	UpdatedAt string               `json:"updatedAt"`
	Prices    map[string]PriceBlob `json:"prices"`
}

// PriceBlob is one variant's prices; nil means the field was absent or null.
type PriceBlob struct {
	Low       *float64 `json:"low"`
	Mid       *float64 `json:"mid"`
	High      *float64 `json:"high"`
	Market    *float64 `json:"market"`
	DirectLow *float64 `json:"directLow"`
}

// envelope is the paginated response wrapper.
type envelope[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Count      int `json:"count"`
	TotalCount int `json:"totalCount"`
}

// CardPage is one page of a set's cards.
type CardPage struct {
	Cards      []Card
	Page       int
	TotalCount int
}
