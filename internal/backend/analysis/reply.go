package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Result is the analysis payload returned to the client. Values are copied
// verbatim from the model reply and are not validated; keys the model left
// out are omitted.
type Result struct {
	Foods        json.RawMessage `json:"foods,omitempty"`
	TotalProtein json.RawMessage `json:"totalProtein,omitempty"`
	Confidence   json.RawMessage `json:"confidence,omitempty"`
}

var errReplyNotObject = errors.New("model reply is not a JSON object")

// stripCodeFence removes a markdown code fence around the reply, if any
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseReply turns the model's textual reply into a Result
func parseReply(content string) (*Result, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}
	if payload == nil {
		return nil, errReplyNotObject
	}

	return &Result{
		Foods:        payload["foods"],
		TotalProtein: payload["totalProtein"],
		Confidence:   payload["confidence"],
	}, nil
}
