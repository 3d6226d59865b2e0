package mindmap

import (
	"fmt"

	"github.com/HendryAvila/xmind-mcp/internal/xmind"
)

// Graph is the built document graph plus facts gathered while building it.
type Graph struct {
	Root *xmind.Topic
	// TopicCount excludes the root.
	TopicCount int
	// UnresolvedMarkers lists marker codes passed through verbatim.
	UnresolvedMarkers []string
}

// Build converts a validated request into an xmind topic graph.
//
// The output mirrors the input exactly: same nesting, same order, nothing
// dropped or merged. Refs are copied as opaque strings. A nil topic aborts
// the whole build.
func Build(req *Request) (*Graph, error) {
	if req == nil {
		return nil, &BuildError{Reason: "request is nil"}
	}

	g := &Graph{}
	root := xmind.NewTopic(req.Title)

	children, err := g.buildTopics(req.Topics, "topics")
	if err != nil {
		return nil, err
	}
	root.Children = children

	for _, rel := range req.Relationships {
		root.Relationships = append(root.Relationships, xmind.NewRelationship(rel.Title, rel.From, rel.To))
	}

	g.Root = root
	return g, nil
}

func (g *Graph) buildTopics(topics []*Topic, prefix string) ([]*xmind.Topic, error) {
	if len(topics) == 0 {
		return nil, nil
	}
	out := make([]*xmind.Topic, 0, len(topics))
	for i, t := range topics {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		node, err := g.buildTopic(t, path)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (g *Graph) buildTopic(t *Topic, path string) (*xmind.Topic, error) {
	if t == nil {
		return nil, &BuildError{Path: path, Reason: "topic is not an object"}
	}

	node := xmind.NewTopic(t.Title)
	node.Ref = t.Ref
	node.Note = t.Note
	if len(t.Labels) > 0 {
		node.Labels = append([]string(nil), t.Labels...)
	}
	for _, code := range t.Markers {
		id, ok := xmind.ResolveMarker(code)
		if !ok {
			g.UnresolvedMarkers = append(g.UnresolvedMarkers, code)
		}
		node.Markers = append(node.Markers, id)
	}
	g.TopicCount++

	children, err := g.buildTopics(t.Children, path+".children")
	if err != nil {
		return nil, err
	}
	node.Children = children
	return node, nil
}
