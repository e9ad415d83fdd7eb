package message

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/scene"
)

func TestEncode(t *testing.T) {
	doc := scene.NewDocument()
	doc.Objects = append(doc.Objects, scene.NewNode(scene.TypeRectangle))

	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"ready", Ready(), `{"type":"ready"}`},
		{"did insert", DidInsert(), `{"type":"didInsert"}`},
		{"log defaults", LogDefaults(), `{"type":"logDefaults"}`},
		{"empty insert text", UpdateInsertText(""), `{"type":"updateInsertText","recentInsertText":""}`},
		{"insert text", UpdateInsertText("{}"), `{"type":"updateInsertText","recentInsertText":"{}"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode = %s, want %s", got, tt.want)
			}
		})
	}

	got, err := Encode(Update(doc))
	if err != nil {
		t.Fatalf("Encode(update): %v", err)
	}
	if !strings.HasPrefix(string(got), `{"type":"update","data":{"objects":[{"type":"RECTANGLE"}]`) {
		t.Errorf("Encode(update) = %s", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType Type
		wantErr  bool
	}{
		{"ready", `{"type":"ready"}`, TypeReady, false},
		{"wrapped", `{"pluginMessage":{"type":"ready"}}`, TypeReady, false},
		{"insert", `{"type":"insert","data":{"objects":[{"type":"TEXT","characters":"hi"}]}}`, TypeInsert, false},
		{"insert text", `{"type":"updateInsertText","recentInsertText":"x"}`, TypeUpdateInsertText, false},
		{"insert without data", `{"type":"insert"}`, "", true},
		{"insert null object", `{"type":"insert","data":{"objects":[null]}}`, "", true},
		{"insert null child", `{"type":"insert","data":{"objects":[{"type":"FRAME","children":[null]}]}}`, "", true},
		{"insert unknown kind", `{"type":"insert","data":{"objects":[{"type":"TABLE"}]}}`, TypeInsert, false},
		{"unknown type", `{"type":"testInsert"}`, "", true},
		{"malformed", `{"type":`, "", true},
		{"empty", `{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("error code = %v, want INVALID_FORMAT", errors.GetCode(err))
				}
				return
			}
			if m.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", m.Type, tt.wantType)
			}
		})
	}
}

func TestDecodeInsertNormalizesDocument(t *testing.T) {
	m, err := Decode([]byte(`{"type":"insert","data":{"objects":[]}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Data.Images == nil || m.Data.Components == nil {
		t.Error("decoded document should have empty side tables")
	}
}

func TestRoundTripInsertText(t *testing.T) {
	text := `{"objects":[{"type":"RECTANGLE","name":"Box"}]}`
	data, err := json.Marshal(UpdateInsertText(text))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.RecentInsertText != text {
		t.Errorf("RecentInsertText = %q, want %q", m.RecentInsertText, text)
	}
}

func TestDirection(t *testing.T) {
	for _, typ := range []Type{TypeReady, TypeInsert, TypeLogDefaults} {
		if !typ.FromUI() {
			t.Errorf("%s should come from the UI", typ)
		}
	}
	for _, typ := range []Type{TypeUpdate, TypeUpdateInsertText, TypeDidInsert} {
		if typ.FromUI() {
			t.Errorf("%s should not come from the UI", typ)
		}
	}
}
