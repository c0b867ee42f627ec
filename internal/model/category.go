package model

// Category is a contest with its own nominees, voting price, and open/closed
// status. Owned by the external voting API; read-only here.
type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	VotingPrice  string `json:"voting_price"`
	IsVotingOpen bool   `json:"is_voting_open"`
	NomineeCount int    `json:"nominee_count"`
}

// CategoryDetails is the single-category view: the category plus its voting
// window and nominee list.
type CategoryDetails struct {
	Category
	VotingStarts string    `json:"voting_starts"`
	VotingEnds   string    `json:"voting_ends"`
	Nominees     []Nominee `json:"nominees"`
}

// VotingResults is the per-category results view from the external API.
type VotingResults struct {
	CategoryID        int             `json:"category_id"`
	CategoryName      string          `json:"category_name"`
	TotalVotes        int             `json:"total_votes"`
	TotalAmountRaised string          `json:"total_amount_raised"`
	Results           []NomineeResult `json:"results"`
}

// NomineeResult is one ranked entry in a category's results.
type NomineeResult struct {
	Rank              int    `json:"rank"`
	NomineeID         int    `json:"nominee_id"`
	NomineeName       string `json:"nominee_name"`
	VoteCount         int    `json:"vote_count"`
	TotalAmountRaised string `json:"total_amount_raised"`
}
