// Package answer turns a webhook reply into display text and suggested
// follow-up questions.
package answer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
)

// NoResults replaces answers that are empty after normalization.
const NoResults = "No results."

const suggestionsField = "suggestedQuestions"

// Answer is the normalized reply.
type Answer struct {
	Text        string
	Suggestions []string
	Shape       Shape
	Field       string
}

// MalformedError reports a body declared as JSON that does not parse.
type MalformedError struct {
	ContentType string
	Err         error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.ContentType, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsStructured reports whether contentType declares JSON.
func IsStructured(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Normalize converts a successful reply body into an Answer.
func Normalize(contentType string, body []byte) (Answer, error) {
	if !IsStructured(contentType) {
		return Answer{Text: orNoResults(string(body)), Shape: ShapeString}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return Answer{}, &MalformedError{ContentType: contentType, Err: err}
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Answer{}, &MalformedError{ContentType: contentType, Err: fmt.Errorf("unexpected data after top-level value")}
	}

	resolved := Classify(value)
	return Answer{
		Text:        orNoResults(resolved.Text()),
		Suggestions: suggestions(value),
		Shape:       resolved.Shape,
		Field:       resolved.Field,
	}, nil
}

func orNoResults(text string) string {
	if strings.TrimSpace(text) == "" {
		return NoResults
	}
	return text
}

// suggestions reads suggestedQuestions as either a list or a comma-separated
// string. Blank entries are dropped.
func suggestions(value any) []string {
	obj, ok := value.(map[string]any)
	if !ok {
		return []string{}
	}
	var parts []string
	switch raw := obj[suggestionsField].(type) {
	case []any:
		for _, item := range raw {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
				continue
			}
			if item != nil {
				parts = append(parts, fmt.Sprint(item))
			}
		}
	case string:
		parts = strings.Split(raw, ",")
	}
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
