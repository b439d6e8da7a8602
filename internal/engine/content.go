package engine

import (
	"encoding/json"
	"strings"

	"github.com/scottlepp/gen/internal/core/domain"
)

// cleanJSON strips the markdown code fences models wrap JSON payloads in.
func cleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// parseContentPayload parses the {"content": "..."} payload that comment
// and reply prompts ask for.
func parseContentPayload(raw string) (string, error) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &payload); err != nil {
		return "", &domain.ContentFormatError{Raw: raw, Err: err}
	}
	if payload.Content == "" {
		return "", &domain.ContentFormatError{Raw: raw, Err: errEmptyField("content")}
	}
	return payload.Content, nil
}

// parseProfilePayload parses the {"displayName", "bio"} payload the profile
// prompt asks for.
func parseProfilePayload(raw string) (displayName, bio string, err error) {
	var payload struct {
		DisplayName string `json:"displayName"`
		Bio         string `json:"bio"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &payload); err != nil {
		return "", "", &domain.ContentFormatError{Raw: raw, Err: err}
	}
	if payload.DisplayName == "" {
		return "", "", &domain.ContentFormatError{Raw: raw, Err: errEmptyField("displayName")}
	}
	return payload.DisplayName, payload.Bio, nil
}

type errEmptyField string

func (e errEmptyField) Error() string { return "missing field " + string(e) }

// slugify lowercases a name and joins its words with the given separator,
// for blob object keys and minted user ids.
func slugify(name, sep string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), sep))
}
