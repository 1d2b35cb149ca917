package models

// Book is a catalog entry. Books are seeded outside the web application.
type Book struct {
	ID     int64  `db:"id"`
	ISBN   string `db:"isbn"`
	Title  string `db:"title"`
	Author string `db:"author"`
	Year   int    `db:"year"`
}

// BookSummary is the payload served by the JSON book API.
type BookSummary struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Year         int    `json:"year"`
	ISBN         string `json:"isbn"`
	ReviewCount  int    `json:"review_count"`
	AverageScore string `json:"average_score"`
}
