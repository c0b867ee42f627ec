package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/klasique2/Bellak-voting/internal/model"
)

// QuickSelectPresets are the fixed quantity shortcuts offered by the vote
// quantity control.
var QuickSelectPresets = []int{1, 5, 10, 25, 50, 100}

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous submission has not finished.
	ErrSubmissionInFlight = errors.New("vote submission already in flight")
	// ErrVotingClosed is returned when a selector is built for a category
	// whose voting window is closed.
	ErrVotingClosed = errors.New("voting is closed for this category")
)

// Initiator requests a payment session for a normalized vote payload and
// returns the hosted payment URL.
type Initiator interface {
	InitiateVote(ctx context.Context, payload model.VoteInitiationPayload) (paymentURL string, err error)
}

type selectorState int

const (
	stateIdle selectorState = iota
	stateSubmitting
)

// VoteSelector drives the vote-quantity and cost control for one category:
// quantity clamped to [MinVotes, MaxVotes] on every mutation, total cost kept
// in exact decimal arithmetic, and submission guarded against re-entry.
//
// The selector mirrors a single-user UI control and is driven from one
// goroutine; the in-flight guard is a state flag, not a lock.
type VoteSelector struct {
	price     decimal.Decimal
	quantity  int
	state     selectorState
	initiator Initiator
}

// NewVoteSelector builds a selector for the given category. It fails when
// voting is closed or the category price is not a valid decimal string.
func NewVoteSelector(category model.Category, initiator Initiator) (*VoteSelector, error) {
	if !category.IsVotingOpen {
		return nil, ErrVotingClosed
	}
	price, err := decimal.NewFromString(category.VotingPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid voting price %q: %w", category.VotingPrice, err)
	}
	return &VoteSelector{
		price:     price,
		quantity:  model.MinVotes,
		initiator: initiator,
	}, nil
}

// Quantity returns the currently selected number of votes.
func (s *VoteSelector) Quantity() int {
	return s.quantity
}

// Increment adds one vote, clamped at MaxVotes.
func (s *VoteSelector) Increment() {
	s.quantity = clampQuantity(s.quantity + 1)
}

// Decrement removes one vote, clamped at MinVotes.
func (s *VoteSelector) Decrement() {
	s.quantity = clampQuantity(s.quantity - 1)
}

// SetQuantity applies a direct numeric entry, clamped to the valid range.
func (s *VoteSelector) SetQuantity(n int) {
	s.quantity = clampQuantity(n)
}

// QuickSelect applies one of the fixed presets. Values outside the valid
// range are clamped like any other entry.
func (s *VoteSelector) QuickSelect(n int) {
	s.quantity = clampQuantity(n)
}

// Total returns quantity × voting price with two fraction digits. The price
// never passes through a float.
func (s *VoteSelector) Total() string {
	return s.price.Mul(decimal.NewFromInt(int64(s.quantity))).StringFixed(2)
}

// Submitting reports whether a submission is in flight; the control is
// disabled while true.
func (s *VoteSelector) Submitting() bool {
	return s.state == stateSubmitting
}

// Submit initiates payment for the selected quantity of votes on nomineeID.
// On success the returned URL is where the voter is redirected; on failure
// the chosen quantity is preserved and the selector returns to idle.
func (s *VoteSelector) Submit(ctx context.Context, nomineeID int, voterName string) (string, error) {
	if s.state == stateSubmitting {
		return "", ErrSubmissionInFlight
	}
	s.state = stateSubmitting
	defer func() { s.state = stateIdle }()

	if voterName == "" {
		voterName = model.DefaultVoterName
	}
	return s.initiator.InitiateVote(ctx, model.VoteInitiationPayload{
		NomineeID:     nomineeID,
		NumberOfVotes: s.quantity,
		VoterName:     voterName,
	})
}

func clampQuantity(n int) int {
	if n < model.MinVotes {
		return model.MinVotes
	}
	if n > model.MaxVotes {
		return model.MaxVotes
	}
	return n
}
