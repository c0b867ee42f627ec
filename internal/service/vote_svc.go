package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/klasique2/Bellak-voting/internal/model"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// ErrVoteRejected is returned when the external API refuses a vote
// initiation with a structured error body.
var ErrVoteRejected = errors.New("vote initiation rejected")

// VoteService provides typed vote initiation and payment verification over
// the external voting API. The proxy handlers forward raw bodies; this
// service is for callers that want decoded results (the vote selector, the
// verification screen).
type VoteService struct {
	api *upstream.Client
}

func NewVoteService(api *upstream.Client) *VoteService {
	return &VoteService{api: api}
}

// Initiate requests a payment session for the given normalized payload.
// On success the result carries the hosted payment URL; a structured
// upstream rejection returns the decoded result alongside ErrVoteRejected so
// field-level messages stay available to the caller.
func (s *VoteService) Initiate(ctx context.Context, payload model.VoteInitiationPayload) (*model.VoteInitiationResult, error) {
	resp, err := s.api.PostJSON(ctx, upstream.VoteInitiatePath, payload)
	if err != nil {
		return nil, err
	}
	if !resp.IsJSON() {
		return nil, &upstream.APIError{
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Message:    fmt.Sprintf("backend returned non-JSON response (%s)", resp.ContentType),
		}
	}

	var result model.VoteInitiationResult
	if err := resp.Decode(&result); err != nil {
		return nil, upstream.NetworkError(err)
	}
	if !resp.OK() || result.Status != "success" {
		return &result, ErrVoteRejected
	}
	if result.Data == nil || result.Data.PaymentURL == "" {
		return &result, &upstream.APIError{
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Message:    "success response missing payment_url",
		}
	}
	return &result, nil
}

// InitiateVote implements Initiator: it runs Initiate and returns only the
// payment URL, which is all the quantity control needs for the redirect.
func (s *VoteService) InitiateVote(ctx context.Context, payload model.VoteInitiationPayload) (string, error) {
	result, err := s.Initiate(ctx, payload)
	if err != nil {
		return "", err
	}
	return result.Data.PaymentURL, nil
}

// Verify confirms a payment reference with the external API after the
// gateway redirects the voter back.
func (s *VoteService) Verify(ctx context.Context, reference string) (*model.VerificationResult, error) {
	resp, err := s.api.PostJSON(ctx, upstream.VoteVerifyPath, model.VerificationRequest{Reference: reference})
	if err != nil {
		return nil, err
	}

	var result model.VerificationResult
	if err := resp.Decode(&result); err != nil {
		return nil, upstream.NetworkError(err)
	}
	return &result, nil
}
