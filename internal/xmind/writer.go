package xmind

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	contentEntry  = "content.json"
	metadataEntry = "metadata.json"
	manifestEntry = "manifest.json"
)

// Options configures a Writer.
type Options struct {
	// Structure is the root layout. Empty means StructureMap.
	Structure Structure
	// Creator and CreatorVersion are recorded in metadata.json.
	Creator        string
	CreatorVersion string
}

// Writer encodes workbooks into .xmind archives.
type Writer struct {
	structureClass string
	creator        string
	creatorVersion string
}

// NewWriter validates the options and returns a ready Writer.
func NewWriter(opts Options) (*Writer, error) {
	if opts.Structure == "" {
		opts.Structure = StructureMap
	}
	if err := ValidateStructure(opts.Structure); err != nil {
		return nil, fmt.Errorf("xmind: %w", err)
	}
	if opts.Creator == "" {
		opts.Creator = "xmind-mcp"
	}
	return &Writer{
		structureClass: structureClasses[opts.Structure],
		creator:        opts.Creator,
		creatorVersion: opts.CreatorVersion,
	}, nil
}

// ─── Wire shapes ────────────────────────────────────────────────────────────

type sheetJSON struct {
	ID               string             `json:"id"`
	Class            string             `json:"class"`
	Title            string             `json:"title"`
	RootTopic        *topicJSON         `json:"rootTopic"`
	Relationships    []relationshipJSON `json:"relationships,omitempty"`
	TopicPositioning string             `json:"topicPositioning"`
}

type topicJSON struct {
	ID             string        `json:"id"`
	Class          string        `json:"class"`
	Title          string        `json:"title"`
	StructureClass string        `json:"structureClass,omitempty"`
	Children       *childrenJSON `json:"children,omitempty"`
	Notes          *notesJSON    `json:"notes,omitempty"`
	Labels         []string      `json:"labels,omitempty"`
	Markers        []markerJSON  `json:"markers,omitempty"`
}

type childrenJSON struct {
	Attached []*topicJSON `json:"attached"`
}

type notesJSON struct {
	Plain struct {
		Content string `json:"content"`
	} `json:"plain"`
}

type markerJSON struct {
	MarkerID MarkerID `json:"markerId"`
}

type relationshipJSON struct {
	ID     string `json:"id"`
	End1ID string `json:"end1Id"`
	End2ID string `json:"end2Id"`
	Title  string `json:"title,omitempty"`
}

type metadataJSON struct {
	Creator struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	} `json:"creator"`
}

type manifestJSON struct {
	FileEntries map[string]struct{} `json:"file-entries"`
}

// FileMode is the permission set of a written document.
const FileMode os.FileMode = 0o644

// ─── Encoding ───────────────────────────────────────────────────────────────

// WriteFile encodes wb and writes it to path. The archive is assembled in a
// temporary file in the same directory and renamed into place, so path
// either holds a complete document or is left untouched.
func (w *Writer) WriteFile(wb *Workbook, path string) error {
	if wb == nil || len(wb.Sheets) == 0 {
		return errors.New("xmind: workbook has no sheets")
	}

	sheets := make([]sheetJSON, 0, len(wb.Sheets))
	for _, sh := range wb.Sheets {
		s, err := w.encodeSheet(sh)
		if err != nil {
			return err
		}
		sheets = append(sheets, s)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".xmind-*.tmp")
	if err != nil {
		return fmt.Errorf("xmind: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := w.writeArchive(tmp, sheets); err != nil {
		_ = tmp.Close()
		return err
	}
	// CreateTemp uses 0600; the rename would carry that onto the document.
	if err := tmp.Chmod(FileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("xmind: set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("xmind: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("xmind: move document into place: %w", err)
	}
	committed = true
	return nil
}

func (w *Writer) writeArchive(out io.Writer, sheets []sheetJSON) error {
	zw := zip.NewWriter(out)

	var meta metadataJSON
	meta.Creator.Name = w.creator
	meta.Creator.Version = w.creatorVersion

	manifest := manifestJSON{FileEntries: map[string]struct{}{
		contentEntry:  {},
		metadataEntry: {},
	}}

	entries := []struct {
		name  string
		value any
	}{
		{contentEntry, sheets},
		{metadataEntry, meta},
		{manifestEntry, manifest},
	}
	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("xmind: create %s: %w", e.name, err)
		}
		if err := json.NewEncoder(f).Encode(e.value); err != nil {
			return fmt.Errorf("xmind: encode %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("xmind: finalize archive: %w", err)
	}
	return nil
}

func (w *Writer) encodeSheet(sh *Sheet) (sheetJSON, error) {
	if sh.Root == nil {
		return sheetJSON{}, fmt.Errorf("xmind: sheet %q has no root topic", sh.Title)
	}

	// Refs resolve to the first topic that declares them.
	refs := make(map[string]string)
	Walk(sh.Root, func(t *Topic, _ int) bool {
		if t.Ref != "" {
			if _, seen := refs[t.Ref]; !seen {
				refs[t.Ref] = t.ID
			}
		}
		return true
	})

	root := encodeTopic(sh.Root)
	root.StructureClass = w.structureClass

	var rels []relationshipJSON
	for _, r := range sh.Root.Relationships {
		from, ok := refs[r.From]
		if !ok {
			return sheetJSON{}, fmt.Errorf("xmind: relationship %q: unknown source ref %q", r.Title, r.From)
		}
		to, ok := refs[r.To]
		if !ok {
			return sheetJSON{}, fmt.Errorf("xmind: relationship %q: unknown target ref %q", r.Title, r.To)
		}
		rels = append(rels, relationshipJSON{ID: r.ID, End1ID: from, End2ID: to, Title: r.Title})
	}

	return sheetJSON{
		ID:               sh.ID,
		Class:            "sheet",
		Title:            sh.Title,
		RootTopic:        root,
		Relationships:    rels,
		TopicPositioning: "fixed",
	}, nil
}

func encodeTopic(t *Topic) *topicJSON {
	out := &topicJSON{
		ID:     t.ID,
		Class:  "topic",
		Title:  t.Title,
		Labels: t.Labels,
	}
	if t.Note != "" {
		out.Notes = &notesJSON{}
		out.Notes.Plain.Content = t.Note
	}
	for _, m := range t.Markers {
		out.Markers = append(out.Markers, markerJSON{MarkerID: m})
	}
	if len(t.Children) > 0 {
		out.Children = &childrenJSON{Attached: make([]*topicJSON, 0, len(t.Children))}
		for _, c := range t.Children {
			out.Children.Attached = append(out.Children.Attached, encodeTopic(c))
		}
	}
	return out
}
