package rod

import (
	"fmt"

	"editor-verify/internal/domain/entity"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

type axMatch struct {
	backendID proto.DOMBackendNodeID
	role      string
	name      string
}

// queryByRole walks the accessibility tree of the whole document.
// The name is filtered here so that substring matching is possible.
func queryByRole(page *rod.Page, query entity.RoleQuery) ([]axMatch, error) {
	doc, err := proto.DOMGetDocument{Depth: gson.Int(0)}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	res, err := proto.AccessibilityQueryAXTree{
		NodeID: doc.Root.NodeID,
		Role:   query.Role,
	}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("query ax tree: %w", err)
	}

	var matches []axMatch
	seen := make(map[proto.DOMBackendNodeID]bool)
	for _, node := range res.Nodes {
		if node.Ignored || node.BackendDOMNodeID == 0 || seen[node.BackendDOMNodeID] {
			continue
		}
		name := axString(node.Name)
		if !query.MatchesName(name) {
			continue
		}
		seen[node.BackendDOMNodeID] = true
		matches = append(matches, axMatch{
			backendID: node.BackendDOMNodeID,
			role:      axString(node.Role),
			name:      name,
		})
	}
	return matches, nil
}

func axString(v *proto.AccessibilityAXValue) string {
	if v == nil {
		return ""
	}
	return axValue(v.Value)
}

func axValue(j gson.JSON) string {
	if j.Nil() {
		return ""
	}
	return j.Str()
}
