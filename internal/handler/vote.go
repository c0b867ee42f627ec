package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/klasique2/Bellak-voting/internal/middleware"
	"github.com/klasique2/Bellak-voting/internal/model"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// logBodyLimit caps how much of an upstream non-JSON body is written to the
// server log for diagnosis.
const logBodyLimit = 500

// VoteHandler proxies vote initiation and payment verification to the
// external voting API. It validates input before any outbound call and never
// relays upstream non-JSON bodies to clients.
type VoteHandler struct {
	api *upstream.Client
}

func NewVoteHandler(api *upstream.Client) *VoteHandler {
	return &VoteHandler{api: api}
}

func countInitiation(outcome string) {
	if Metrics.VotesInitiated != nil {
		Metrics.VotesInitiated.WithLabelValues(outcome).Inc()
	}
}

// Initiate handles POST /api/vote/initiate.
func (h *VoteHandler) Initiate(c fiber.Ctx) error {
	var req model.VoteInitiationRequest
	if err := c.Bind().JSON(&req); err != nil {
		countInitiation("rejected")
		return middleware.StatusError(c, fiber.StatusBadRequest,
			"Invalid JSON in request body",
			map[string][]string{"body": {"Request body must be valid JSON"}})
	}

	if req.NomineeID == 0 {
		countInitiation("rejected")
		return middleware.FieldError(c, "nominee_id", "Nominee ID is required")
	}

	// Absent quantity defaults to one vote; an explicit value must sit in
	// [1, 999] and is forwarded unchanged.
	votes := model.MinVotes
	if req.NumberOfVotes != nil {
		if msg := middleware.ValidateVoteQuantity(*req.NumberOfVotes); msg != "" {
			countInitiation("rejected")
			return middleware.FieldError(c, "number_of_votes", msg)
		}
		votes = *req.NumberOfVotes
	}

	payload := model.VoteInitiationPayload{
		NomineeID:     req.NomineeID,
		NumberOfVotes: votes,
		VoterName:     middleware.NormalizeVoterName(req.VoterName),
	}

	resp, err := h.api.PostJSON(c.Context(), upstream.VoteInitiatePath, payload)
	if err != nil {
		countInitiation("unreachable")
		middleware.Logger.Error().Err(err).Int("nominee_id", payload.NomineeID).
			Msg("vote initiation: upstream unreachable")
		return middleware.StatusError(c, fiber.StatusServiceUnavailable,
			"Failed to connect to backend API",
			map[string][]string{"backend": {"Unable to reach the voting service"}})
	}

	if resp.IsJSON() {
		if !resp.OK() {
			countInitiation("upstream_error")
			middleware.Logger.Warn().Int("status", resp.Status).
				Int("nominee_id", payload.NomineeID).
				Str("body", string(resp.Body)).
				Msg("vote initiation: backend rejected request")
			// Relay the upstream body verbatim so field-level messages reach
			// the client.
			return sendJSON(c, resp.Status, resp.Body)
		}
		countInitiation("forwarded")
		return sendJSON(c, fiber.StatusOK, resp.Body)
	}

	// Upstream returned HTML or some other non-JSON payload. Log it for
	// diagnosis; never relay it.
	countInitiation("upstream_error")
	body := resp.Body
	if len(body) > logBodyLimit {
		body = body[:logBodyLimit]
	}
	middleware.Logger.Error().
		Int("status", resp.Status).
		Str("status_text", resp.StatusText).
		Str("content_type", resp.ContentType).
		Str("body", string(body)).
		Msg("vote initiation: backend returned non-JSON response")

	return middleware.StatusError(c, fiber.StatusInternalServerError,
		fmt.Sprintf("Backend returned %d error. Check server logs for details.", resp.Status),
		map[string][]string{"backend": {
			fmt.Sprintf("Backend API returned %d: %s", resp.Status, resp.StatusText),
		}})
}

// Verify handles POST /api/vote/verify. The contract here is deliberately
// blunter than initiation: anything other than a missing reference or a clean
// upstream JSON reply collapses to a 500.
func (h *VoteHandler) Verify(c fiber.Ctx) error {
	var req model.VerificationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return internalError(c)
	}

	reference, errMsg := middleware.ValidateReference(req.Reference)
	if errMsg != "" {
		return middleware.StatusError(c, fiber.StatusBadRequest, errMsg, nil)
	}

	resp, err := h.api.PostJSON(c.Context(), upstream.VoteVerifyPath,
		model.VerificationRequest{Reference: reference})
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("payment verification: upstream unreachable")
		return internalError(c)
	}
	if !json.Valid(resp.Body) {
		middleware.Logger.Error().Int("status", resp.Status).
			Str("content_type", resp.ContentType).
			Msg("payment verification: backend returned undecodable body")
		return internalError(c)
	}

	status := resp.Status
	if resp.OK() {
		status = fiber.StatusOK
	}
	return sendJSON(c, status, resp.Body)
}

func internalError(c fiber.Ctx) error {
	return middleware.StatusError(c, fiber.StatusInternalServerError, "Internal server error", nil)
}

// sendJSON relays a raw upstream JSON body with the given status.
func sendJSON(c fiber.Ctx, status int, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}
