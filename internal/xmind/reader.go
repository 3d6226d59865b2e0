package xmind

import (
	"archive/zip"
	"encoding/json"
	"fmt"
)

// ReadFile decodes an archive produced by Writer back into a Workbook.
//
// Relationship endpoints come back as document ids (the Ref of each topic
// is not stored in the archive), so From/To hold topic IDs.
func ReadFile(path string) (*Workbook, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("xmind: open %s: %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	f, err := zr.Open(contentEntry)
	if err != nil {
		return nil, fmt.Errorf("xmind: %s missing from %s: %w", contentEntry, path, err)
	}
	defer func() { _ = f.Close() }()

	var sheets []sheetJSON
	if err := json.NewDecoder(f).Decode(&sheets); err != nil {
		return nil, fmt.Errorf("xmind: decode %s: %w", contentEntry, err)
	}

	wb := &Workbook{}
	for _, s := range sheets {
		if s.RootTopic == nil {
			return nil, fmt.Errorf("xmind: sheet %q has no root topic", s.Title)
		}
		root := decodeTopic(s.RootTopic)
		for _, r := range s.Relationships {
			root.Relationships = append(root.Relationships, &Relationship{
				ID: r.ID, Title: r.Title, From: r.End1ID, To: r.End2ID,
			})
		}
		wb.Sheets = append(wb.Sheets, &Sheet{ID: s.ID, Title: s.Title, Root: root})
	}
	return wb, nil
}

func decodeTopic(in *topicJSON) *Topic {
	t := &Topic{ID: in.ID, Title: in.Title, Labels: in.Labels}
	if in.Notes != nil {
		t.Note = in.Notes.Plain.Content
	}
	for _, m := range in.Markers {
		t.Markers = append(t.Markers, m.MarkerID)
	}
	if in.Children != nil {
		for _, c := range in.Children.Attached {
			t.Children = append(t.Children, decodeTopic(c))
		}
	}
	return t
}
