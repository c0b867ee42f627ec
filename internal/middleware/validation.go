package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/klasique2/Bellak-voting/internal/model"
)

// MaxReferenceLen bounds payment gateway references; real references are
// short opaque tokens.
const MaxReferenceLen = 128

// idRe matches positive decimal ids as they appear in query parameters.
var idRe = regexp.MustCompile(`^[0-9]+$`)

// ErrorResponse returns the {error} envelope used by the read-only lookup
// proxies.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// StatusError returns the {status,message,errors} envelope used by the vote
// proxies. message and fields may each be empty.
func StatusError(c fiber.Ctx, status int, message string, fields map[string][]string) error {
	body := fiber.Map{"status": "error"}
	if message != "" {
		body["message"] = message
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	return c.Status(status).JSON(body)
}

// FieldError is StatusError for a single offending field.
func FieldError(c fiber.Ctx, field, message string) error {
	return StatusError(c, fiber.StatusBadRequest, "", map[string][]string{field: {message}})
}

// ValidateID checks a numeric id query parameter. Returns the trimmed id and
// an empty message on success.
func ValidateID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "Category ID is required"
	}
	if !idRe.MatchString(id) {
		return "", "Category ID must be numeric"
	}
	return id, ""
}

// ValidateReference checks a payment reference. Returns the trimmed
// reference and an empty message on success.
func ValidateReference(ref string) (string, string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "Reference is required"
	}
	if len(ref) > MaxReferenceLen {
		return "", "Reference is too long"
	}
	return ref, ""
}

// ValidateVoteQuantity checks an explicit number_of_votes value against the
// allowed range. Absent values are defaulted by the caller, not here.
func ValidateVoteQuantity(n int) string {
	if n < model.MinVotes {
		return "Number of votes must be a positive number"
	}
	if n > model.MaxVotes {
		return "Number of votes cannot exceed 999"
	}
	return ""
}

// NormalizeVoterName trims the voter name and applies the anonymous default.
func NormalizeVoterName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.DefaultVoterName
	}
	return name
}
