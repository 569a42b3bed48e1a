// Package crowdindomain holds the Crowdin webhook event types. Crowdin
// posts either one event object or a batch under an "events" key.
package crowdindomain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Event names Crowdin sends.
const (
	EventFileAdded      = "file.added"
	EventFileUpdated    = "file.updated"
	EventFileTranslated = "file.translated"
	EventStringAdded    = "string.added"
	EventStringUpdated  = "string.updated"
	EventStringDeleted  = "string.deleted"
)

// User is the Crowdin account behind an event.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// Project is the Crowdin project an event belongs to.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// File is a translated source file.
type File struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Project Project `json:"project"`
}

// SourceString is one translatable string of a file.
type SourceString struct {
	ID         string  `json:"id"`
	Identifier string  `json:"identifier"`
	Key        string  `json:"key"`
	Text       string  `json:"text"`
	URL        string  `json:"url"`
	File       File    `json:"file"`
	Project    Project `json:"project"`
}

// TargetLanguage is the language a file was translated into.
type TargetLanguage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is any Crowdin webhook event. File events carry File, string
// events carry String; file.translated additionally carries TargetLanguage
// and no User.
type Event struct {
	Event          string          `json:"event"`
	File           *File           `json:"file,omitempty"`
	String         *SourceString   `json:"string,omitempty"`
	User           *User           `json:"user,omitempty"`
	TargetLanguage *TargetLanguage `json:"targetLanguage,omitempty"`
}

// IsFileEvent reports whether the event concerns a whole file.
func (e *Event) IsFileEvent() bool {
	return strings.HasPrefix(e.Event, "file.")
}

// IsStringEvent reports whether the event concerns a single source string.
func (e *Event) IsStringEvent() bool {
	return strings.HasPrefix(e.Event, "string.")
}

// ParseWebhookPayload decodes a webhook body into its events, accepting
// both the single-event and the batched shape.
func ParseWebhookPayload(body []byte) ([]Event, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid webhook payload")
	}
	if gjson.GetBytes(body, "events").IsArray() {
		var batch struct {
			Events []Event `json:"events"`
		}
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, fmt.Errorf("decoding batch payload: %w", err)
		}
		return batch.Events, nil
	}
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}
	if event.Event == "" {
		return nil, fmt.Errorf("missing event name")
	}
	return []Event{event}, nil
}
