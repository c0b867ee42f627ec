package model

// DefaultVoterName is used when a vote initiation request does not name the
// voter.
const DefaultVoterName = "Anonymous Voter"

// Vote quantity bounds enforced before any upstream call.
const (
	MinVotes = 1
	MaxVotes = 999
)

// VoteInitiationRequest is the inbound body for POST /api/vote/initiate.
// NumberOfVotes is a pointer so an absent field (defaults to 1) can be told
// apart from an explicit zero (rejected).
type VoteInitiationRequest struct {
	NomineeID     int    `json:"nominee_id"`
	NumberOfVotes *int   `json:"number_of_votes,omitempty"`
	VoterName     string `json:"voter_name,omitempty"`
}

// VoteInitiationPayload is the normalized body forwarded to the external
// API's vote-initiation endpoint. All fields are always set.
type VoteInitiationPayload struct {
	NomineeID     int    `json:"nominee_id"`
	NumberOfVotes int    `json:"number_of_votes"`
	VoterName     string `json:"voter_name"`
}

// PaymentSession is the hosted-payment handoff returned on successful vote
// initiation.
type PaymentSession struct {
	PaymentURL string `json:"payment_url"`
	Reference  string `json:"reference,omitempty"`
}

// VoteInitiationResult is the discriminated result of a vote initiation:
// status "success" carries Data, status "error" carries Errors and/or
// Message.
type VoteInitiationResult struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    *PaymentSession     `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// VerificationRequest is the inbound body for POST /api/vote/verify.
type VerificationRequest struct {
	Reference string `json:"reference"`
}

// VerifiedVote is the settled-payment detail block on a successful
// verification.
type VerifiedVote struct {
	ID              int    `json:"id"`
	NomineeName     string `json:"nominee_name"`
	CategoryName    string `json:"category_name"`
	AmountPaid      string `json:"amount_paid"`
	PaymentVerified bool   `json:"payment_verified"`
	CreatedAt       string `json:"created_at"`
}

// VerificationResult is the outcome of a payment verification.
type VerificationResult struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Data    *VerifiedVote `json:"data,omitempty"`
}
