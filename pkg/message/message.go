// Package message defines the envelopes exchanged between a UI and the
// host side of figmajson.
//
// The UI sends [TypeReady] once it is listening, [TypeInsert] with a
// document to recreate, and [TypeLogDefaults] to ask for the default node
// table. The host answers with [TypeUpdate] (a dump of the current
// selection), [TypeUpdateInsertText] (the text of the most recent insert)
// and [TypeDidInsert].
//
// Envelopes are JSON objects with a "type" field:
//
//	{"type": "ready"}
//	{"type": "insert", "data": {"objects": [...], ...}}
//	{"type": "updateInsertText", "recentInsertText": "..."}
//
// Decode also accepts envelopes wrapped as {"pluginMessage": {...}}.
package message

import (
	"encoding/json"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// Type names an envelope.
type Type string

// UI to host.
const (
	TypeReady       Type = "ready"
	TypeInsert      Type = "insert"
	TypeLogDefaults Type = "logDefaults"
)

// Host to UI.
const (
	TypeUpdate           Type = "update"
	TypeUpdateInsertText Type = "updateInsertText"
	TypeDidInsert        Type = "didInsert"
)

var directions = map[Type]bool{
	TypeReady:            true,
	TypeInsert:           true,
	TypeLogDefaults:      true,
	TypeUpdate:           false,
	TypeUpdateInsertText: false,
	TypeDidInsert:        false,
}

// Known reports whether t is a defined message type.
func (t Type) Known() bool {
	_, ok := directions[t]
	return ok
}

// FromUI reports whether messages of type t are sent by the UI.
func (t Type) FromUI() bool { return directions[t] }

// Message is one envelope. Data is set for insert and update,
// RecentInsertText for updateInsertText.
type Message struct {
	Type             Type
	Data             *scene.Document
	RecentInsertText string
}

func Ready() Message       { return Message{Type: TypeReady} }
func LogDefaults() Message { return Message{Type: TypeLogDefaults} }
func DidInsert() Message   { return Message{Type: TypeDidInsert} }

func Insert(doc *scene.Document) Message { return Message{Type: TypeInsert, Data: doc} }
func Update(doc *scene.Document) Message { return Message{Type: TypeUpdate, Data: doc} }

func UpdateInsertText(text string) Message {
	return Message{Type: TypeUpdateInsertText, RecentInsertText: text}
}

type envelope struct {
	Type             Type             `json:"type"`
	Data             *scene.Document  `json:"data,omitempty"`
	RecentInsertText *string          `json:"recentInsertText,omitempty"`
	PluginMessage    *json.RawMessage `json:"pluginMessage,omitempty"`
}

// MarshalJSON emits only the fields that belong to the message type.
func (m Message) MarshalJSON() ([]byte, error) {
	env := envelope{Type: m.Type}
	switch m.Type {
	case TypeInsert, TypeUpdate:
		env.Data = m.Data
		if env.Data == nil {
			env.Data = scene.NewDocument()
		}
	case TypeUpdateInsertText:
		text := m.RecentInsertText
		env.RecentInsertText = &text
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes an envelope, unwrapping pluginMessage.
func (m *Message) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.PluginMessage != nil && env.Type == "" {
		return m.UnmarshalJSON(*env.PluginMessage)
	}
	*m = Message{Type: env.Type, Data: env.Data}
	if env.RecentInsertText != nil {
		m.RecentInsertText = *env.RecentInsertText
	}
	if m.Data != nil {
		m.Data.Normalize()
	}
	return nil
}

// Validate checks that the type is known and that its payload is present
// and well formed.
func (m Message) Validate() error {
	if !m.Type.Known() {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown message type %q", m.Type)
	}
	if m.Type != TypeInsert && m.Type != TypeUpdate {
		return nil
	}
	if m.Data == nil {
		return errors.New(errors.ErrCodeInvalidFormat, "%s message has no data", m.Type)
	}
	return m.Data.Validate()
}

// Encode returns the JSON form of m.
func Encode(m Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode parses and validates one envelope.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode message")
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}
