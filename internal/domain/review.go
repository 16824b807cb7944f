package domain

// Review is a product review as submitted by a client. Reviews are immutable
// once stored; there is no update or delete path.
type Review struct {
	Title     string `json:"review_title"`
	Body      string `json:"review_body"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"review_rating"`
}

// Text returns the string that gets embedded: title and body joined by a space.
func (r Review) Text() string {
	return r.Title + " " + r.Body
}

// SearchHit is one ranked result returned by semantic search.
type SearchHit struct {
	ID     int     `json:"id"`
	Score  float32 `json:"score"`
	Review Review  `json:"review"`
}
