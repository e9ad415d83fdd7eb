package scene

import "encoding/json"

// MixedValue is the sentinel string that stands in for the host's mixed
// marker in serialized documents. The namespace makes a collision with a
// legitimate field value practically impossible.
const MixedValue = "__Symbol(figma.mixed)__"

// MixedMarker is the type of the live mixed marker.
type MixedMarker struct{}

// Mixed is the value a live host reports for a field whose value varies
// across a text range or a set of children.
var Mixed = MixedMarker{}

// MarshalJSON encodes the marker as [MixedValue] so a marker that slips into
// a serialized record still produces the sentinel.
func (MixedMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal(MixedValue)
}

// IsMixed reports whether v is the live marker or the serialized sentinel.
func IsMixed(v any) bool {
	switch x := v.(type) {
	case MixedMarker, *MixedMarker:
		return true
	case string:
		return x == MixedValue
	}
	return false
}
