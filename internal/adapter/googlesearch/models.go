package googlesearch

// SearchItem — один результат поиска по картинкам
type SearchItem struct {
	Title       string          `json:"title"`
	Link        string          `json:"link"`
	DisplayLink string          `json:"displayLink"`
	Mime        string          `json:"mime"`
	Image       SearchItemImage `json:"image"`
}

// SearchItemImage — метаданные картинки из выдачи
type SearchItemImage struct {
	ContextLink string `json:"contextLink"`
	Height      int    `json:"height"`
	Width       int    `json:"width"`
	ByteSize    int    `json:"byteSize"`
}

// APIError — тело ошибки Custom Search API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// SearchResponse для ответа
type SearchResponse struct {
	Items []SearchItem `json:"items"`
	Error *APIError    `json:"error,omitempty"`
}
