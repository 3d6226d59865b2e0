// Package mindmap turns a generate-mind-map request into a document graph.
//
// The pipeline has three pure steps, each in its own file:
//   - validate.go: decode tool arguments into a Request and check its shape
//   - builder.go:  build the xmind.Topic graph from the request tree
//   - assemble.go: wrap the root topic into a workbook for the writer
//
// Output location and persistence live in the output and xmind packages;
// this package never touches the file system.
package mindmap

// Topic is one node of the caller-supplied tree. Children nest without limit.
type Topic struct {
	Title    string   `json:"title" validate:"required"`
	Ref      string   `json:"ref,omitempty"`
	Note     string   `json:"note,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Markers  []string `json:"markers,omitempty" validate:"omitempty,dive,required"`
	Children []*Topic `json:"children,omitempty" validate:"omitempty,dive,required"`
}

// Relationship links two topics by their Ref.
type Relationship struct {
	Title string `json:"title"`
	From  string `json:"from" validate:"required"`
	To    string `json:"to" validate:"required"`
}

// Request is the validated argument set of the generate-mind-map tool.
type Request struct {
	Title         string         `json:"title" validate:"required"`
	Topics        []*Topic       `json:"topics" validate:"required,dive,required"`
	Filename      string         `json:"filename" validate:"required"`
	OutputPath    string         `json:"outputPath,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty" validate:"omitempty,dive"`
}

// CountTopics returns the number of topic objects in the request tree,
// not counting the root.
func (r *Request) CountTopics() int {
	return countTopics(r.Topics)
}

func countTopics(topics []*Topic) int {
	n := 0
	for _, t := range topics {
		if t == nil {
			continue
		}
		n += 1 + countTopics(t.Children)
	}
	return n
}
