package mindmap

import "github.com/HendryAvila/xmind-mcp/internal/xmind"

// Assemble wraps a built root topic into the workbook the writer accepts.
func Assemble(root *xmind.Topic) (*xmind.Workbook, error) {
	if root == nil {
		return nil, &BuildError{Reason: "root topic is missing"}
	}
	return xmind.NewWorkbook(root), nil
}
