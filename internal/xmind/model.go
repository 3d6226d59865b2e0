// Package xmind is the serialization backend for mind-map documents.
//
// It owns the in-memory workbook model (Workbook → Sheet → Topic tree plus
// Relationships) and the .xmind archive encoding. Callers build a Topic
// graph, wrap it with NewWorkbook and hand it to a Writer. Nothing outside
// this package depends on the archive layout.
package xmind

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Extension is the canonical file extension of a mind-map document.
const Extension = ".xmind"

// Structure selects the layout of the root topic.
type Structure string

const (
	StructureMap           Structure = "map"
	StructureLogicRight    Structure = "logic-right"
	StructureLogicLeft     Structure = "logic-left"
	StructureOrgChart      Structure = "org-chart"
	StructureTreeRight     Structure = "tree-right"
	StructureTreeLeft      Structure = "tree-left"
	StructureFishboneLeft  Structure = "fishbone-left"
	StructureFishboneRight Structure = "fishbone-right"
	StructureTimeline      Structure = "timeline"
)

// structureClasses maps a layout name to the class the document format uses.
var structureClasses = map[Structure]string{
	StructureMap:           "org.xmind.ui.map.unbalanced",
	StructureLogicRight:    "org.xmind.ui.logic.right",
	StructureLogicLeft:     "org.xmind.ui.logic.left",
	StructureOrgChart:      "org.xmind.ui.org-chart.down",
	StructureTreeRight:     "org.xmind.ui.tree.right",
	StructureTreeLeft:      "org.xmind.ui.tree.left",
	StructureFishboneLeft:  "org.xmind.ui.fishbone.leftHeaded",
	StructureFishboneRight: "org.xmind.ui.fishbone.rightHeaded",
	StructureTimeline:      "org.xmind.ui.timeline.horizontal",
}

// ValidateStructure returns an error if the layout is not recognized.
func ValidateStructure(s Structure) error {
	if _, ok := structureClasses[s]; !ok {
		return fmt.Errorf("invalid structure %q: must be one of: %s", s, joinStructures())
	}
	return nil
}

// Structures returns every known layout name in sorted order.
func Structures() []Structure {
	out := make([]Structure, 0, len(structureClasses))
	for s := range structureClasses {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinStructures() string {
	names := make([]string, 0, len(structureClasses))
	for _, st := range Structures() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

// Topic is a node of the mind-map tree.
//
// Ref is the caller's stable identifier, used only to resolve relationship
// endpoints at write time. ID is the document-level identifier and is
// generated by NewTopic.
type Topic struct {
	ID       string
	Title    string
	Ref      string
	Note     string
	Labels   []string
	Markers  []MarkerID
	Children []*Topic

	// Relationships are only meaningful on the root topic.
	Relationships []*Relationship
}

// NewTopic creates a topic with a fresh document id.
func NewTopic(title string) *Topic {
	return &Topic{ID: uuid.NewString(), Title: title}
}

// Relationship is a labeled directed edge between two topics, addressed by Ref.
type Relationship struct {
	ID    string
	Title string
	From  string
	To    string
}

// NewRelationship creates a relationship with a fresh document id.
func NewRelationship(title, from, to string) *Relationship {
	return &Relationship{ID: uuid.NewString(), Title: title, From: from, To: to}
}

// Sheet is one canvas of a workbook.
type Sheet struct {
	ID    string
	Title string
	Root  *Topic
}

// Workbook is the top-level document handed to a Writer.
type Workbook struct {
	Sheets []*Sheet
}

// NewWorkbook wraps a root topic into a single-sheet workbook.
func NewWorkbook(root *Topic) *Workbook {
	return &Workbook{
		Sheets: []*Sheet{{
			ID:    uuid.NewString(),
			Title: root.Title,
			Root:  root,
		}},
	}
}

// Walk visits t and its descendants depth-first in pre-order.
// Returning false from fn stops descent into that node's children.
func Walk(t *Topic, fn func(t *Topic, depth int) bool) {
	walk(t, 0, fn)
}

func walk(t *Topic, depth int, fn func(*Topic, int) bool) {
	if t == nil || !fn(t, depth) {
		return
	}
	for _, c := range t.Children {
		walk(c, depth+1, fn)
	}
}
