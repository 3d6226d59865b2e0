package xmind

import (
	"sort"
	"strings"
)

// MarkerID is the document-level identifier of a marker icon, e.g. "arrow-refresh".
type MarkerID string

// MarkerKey addresses a marker by category and name, as in "Arrow.refresh".
type MarkerKey struct {
	Category string
	Name     string
}

// String returns the "Category.name" form of the key.
func (k MarkerKey) String() string {
	return k.Category + MarkerSeparator + k.Name
}

// MarkerSeparator joins a marker category and name.
const MarkerSeparator = "."

var colors = []string{"red", "orange", "yellow", "blue", "green", "purple", "gray"}

// markerRegistry is the fixed catalogue of known markers.
var markerRegistry = buildRegistry()

func buildRegistry() map[MarkerKey]MarkerID {
	r := make(map[MarkerKey]MarkerID)
	add := func(category, name, id string) {
		r[MarkerKey{Category: category, Name: name}] = MarkerID(id)
	}

	for i := 1; i <= 9; i++ {
		n := string(rune('0' + i))
		add("Priority", "p"+n, "priority-"+n)
	}
	for _, n := range []string{"smile", "laugh", "angry", "cry", "surprise", "boring"} {
		add("Smiley", n, "smiley-"+n)
	}
	for _, n := range []string{"start", "oct", "quarter", "3oct", "half", "5oct", "3quar", "7oct", "done"} {
		add("Task", n, "task-"+n)
	}
	for _, c := range colors {
		add("Flag", c, "flag-"+c)
		add("Star", c, "star-"+c)
		add("People", c, "people-"+c)
	}
	arrows := map[string]string{
		"up":        "arrow-up",
		"upRight":   "arrow-up-right",
		"right":     "arrow-right",
		"downRight": "arrow-down-right",
		"down":      "arrow-down",
		"downLeft":  "arrow-down-left",
		"left":      "arrow-left",
		"upLeft":    "arrow-up-left",
		"refresh":   "arrow-refresh",
	}
	for n, id := range arrows {
		add("Arrow", n, id)
	}
	for _, n := range []string{"plus", "minus", "question", "exclam", "info", "wrong", "right"} {
		add("Symbol", n, "symbol-"+n)
	}
	for _, n := range []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"} {
		add("Month", n, "month-"+n)
	}
	for _, n := range []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"} {
		add("Week", n, "week-"+n)
	}
	return r
}

// LookupMarker resolves a category/name pair against the registry.
func LookupMarker(category, name string) (MarkerID, bool) {
	id, ok := markerRegistry[MarkerKey{Category: category, Name: name}]
	return id, ok
}

// ParseMarker splits a "Category.name" code on the first separator.
// A code without a separator yields an empty name.
func ParseMarker(code string) MarkerKey {
	category, name, _ := strings.Cut(code, MarkerSeparator)
	return MarkerKey{Category: category, Name: name}
}

// ResolveMarker maps a marker code to its MarkerID. Unknown codes are
// returned unchanged so that the caller's value still reaches the document.
func ResolveMarker(code string) (MarkerID, bool) {
	k := ParseMarker(code)
	if id, ok := LookupMarker(k.Category, k.Name); ok {
		return id, true
	}
	return MarkerID(code), false
}

// MarkerEntry is one row of the marker catalogue.
type MarkerEntry struct {
	Code string   `json:"code"`
	ID   MarkerID `json:"id"`
}

// Markers returns the whole registry sorted by code.
func Markers() []MarkerEntry {
	out := make([]MarkerEntry, 0, len(markerRegistry))
	for k, id := range markerRegistry {
		out = append(out, MarkerEntry{Code: k.String(), ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
