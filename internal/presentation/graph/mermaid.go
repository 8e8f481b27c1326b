package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/paramspec/pkg/schema"
)

// Overlay marks the outcome of a validation on the diagram.
type Overlay struct {
	// FailedKeys are the parameters named by a failure.
	FailedKeys []string
	// Code is shown on the root node when set.
	Code string
}

// GenerateMermaid produces a Mermaid flowchart of a schema's parameters.
// It applies semantic styling:
// - Schema root: ((Circle))
// - Collection: [[Subroutine]]
// - Scalar: [Rectangle]
// Required parameters hang off solid edges, optional ones off dotted edges.
// Failed keys from the overlay are highlighted.
func GenerateMermaid(name string, s *schema.Schema, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := "schema_" + sanitizeMermaidID(name)
	rootLabel := name
	if overlay != nil && overlay.Code != "" {
		rootLabel = fmt.Sprintf("%s <br/> %s", name, overlay.Code)
	}
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", root, escape(rootLabel))

	for _, c := range s.Constraints() {
		safeID := "param_" + sanitizeMermaidID(c.Key)

		opener, closer := "[", "]"
		if c.Type.IsCollection() {
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label(c)), closer)

		arrow := "-.->"
		if c.Required {
			arrow = "-->"
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", root, arrow, safeID)
	}

	if overlay != nil && len(overlay.FailedKeys) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef failed fill:#fee2e2,stroke:#b91c1c,stroke-width:3px,color:#000;\n")

		seen := make(map[string]bool)
		for _, key := range overlay.FailedKeys {
			safeID := sanitizeMermaidID(key)
			if seen[safeID] || safeID == "" {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class param_%s failed;\n", safeID)
		}
	}

	return sb.String()
}

func label(c schema.Constraint) string {
	parts := []string{c.Key, c.Type.String()}
	if c.Type.IsCollection() {
		parts[1] = fmt.Sprintf("%s&lt;%s&gt;", c.Type, c.Element)
	}
	if c.Bounds != nil {
		parts = append(parts, c.Bounds.String())
	}
	if c.Allowed != nil {
		values := make([]string, len(c.Allowed))
		for i, v := range c.Allowed {
			values[i] = fmt.Sprint(v)
		}
		parts = append(parts, "{"+strings.Join(values, ",")+"}")
	}
	return strings.Join(parts, " <br/> ")
}

// escape keeps labels inside their double quotes.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
