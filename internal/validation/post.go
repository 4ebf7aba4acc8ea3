package validation

import (
	"encoding/json"
	"strings"

	"lema/internal/models"
)

// RootField is the field path used when the payload as a whole is malformed.
const RootField = "_root"

// ParseID trims a path identifier and reports it under field when it is empty.
func ParseID(raw, field, message string) (string, models.FieldErrors) {
	errs := models.FieldErrors{}
	id := strings.TrimSpace(raw)
	if id == "" {
		errs.Add(field, message)
	}
	return id, errs
}

// CreatePost is a validated, trimmed post-creation payload.
type CreatePost struct {
	UserID string
	Title  string
	Body   string
}

// ParseCreatePost decodes and validates a post-creation body. Every failing
// field is reported, not just the first one.
func ParseCreatePost(raw []byte) (CreatePost, models.FieldErrors) {
	errs := models.FieldErrors{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		errs.Add(RootField, "Expected a JSON object")
		return CreatePost{}, errs
	}

	in := CreatePost{
		UserID: requiredString(fields, "userId", "User ID is required", errs),
		Title:  requiredString(fields, "title", "Title is required", errs),
		Body:   requiredString(fields, "body", "Body is required", errs),
	}
	return in, errs
}

func requiredString(fields map[string]json.RawMessage, name, message string, errs models.FieldErrors) string {
	raw, ok := fields[name]
	if !ok {
		errs.Add(name, "Required")
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add(name, "Expected string")
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		errs.Add(name, message)
	}
	return s
}
