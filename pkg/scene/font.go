package scene

import (
	"strings"

	"github.com/matzehuels/figmajson/pkg/errors"
)

// FontName identifies a font by family and style.
type FontName struct {
	Family string `json:"family" toml:"family"`
	Style  string `json:"style" toml:"style"`
}

func (f FontName) String() string { return f.Family + " " + f.Style }

// EncodeFont encodes f as "family|style". It fails when either part
// contains the separator, since the result could not be decoded again.
func EncodeFont(f FontName) (string, error) {
	if err := errors.ValidateFontPart(f.Family); err != nil {
		return "", err
	}
	if err := errors.ValidateFontPart(f.Style); err != nil {
		return "", err
	}
	return f.Family + errors.FontSeparator + f.Style, nil
}

// DecodeFont parses a string produced by [EncodeFont].
func DecodeFont(s string) (FontName, error) {
	parts := strings.Split(s, errors.FontSeparator)
	if len(parts) != 2 {
		return FontName{}, errors.New(errors.ErrCodeInvalidFont, "unable to decode font string: %q", s)
	}
	return FontName{Family: parts[0], Style: parts[1]}, nil
}

// FontNameOf extracts a font name from a field value. It accepts the typed
// form used by live hosts and the generic object form produced by
// encoding/json. Mixed values and malformed objects report false.
func FontNameOf(v any) (FontName, bool) {
	switch x := v.(type) {
	case FontName:
		return x, true
	case *FontName:
		if x == nil {
			return FontName{}, false
		}
		return *x, true
	case map[string]any:
		family, ok1 := x["family"].(string)
		style, ok2 := x["style"].(string)
		if !ok1 || !ok2 {
			return FontName{}, false
		}
		return FontName{Family: family, Style: style}, true
	}
	return FontName{}, false
}
