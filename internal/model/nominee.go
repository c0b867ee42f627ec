package model

// Nominee is a candidate within a category. vote_count and
// total_amount_raised are eventually-consistent tallies owned by the external
// API; total_amount_raised is a decimal string and is never parsed into a
// float for transmission.
type Nominee struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Photo             *string `json:"photo"`
	VoteCount         int     `json:"vote_count"`
	TotalAmountRaised string  `json:"total_amount_raised"`
	CategoryID        int     `json:"category_id"`
}
