package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/paramspec/internal/presentation/graph"
	"github.com/aretw0/paramspec/pkg/schema"
)

func TestGenerateMermaid(t *testing.T) {
	s := schema.NewBuilder().
		MustRegister("user-name", schema.String, true).
		MustRegister("age", schema.Integer, true, schema.WithBounds(0, 120)).
		MustRegister("tags", schema.Set, false, schema.WithElement(schema.String), schema.WithAllowed("a", "b")).
		Build()

	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		absent   []string
	}{
		{
			name: "Shapes and Edges",
			contains: []string{
				"graph TD\n",
				`schema_signup(("signup"))`,
				`param_user_name["user-name <br/> string"]`,
				`param_age["age <br/> integer <br/> [0, 120]"]`,
				`param_tags[["tags <br/> set&lt;string&gt; <br/> {a,b}"]]`,
				"schema_signup --> param_age",
				"schema_signup -.-> param_tags",
			},
			absent: []string{"classDef failed"},
		},
		{
			name:    "Failure Overlay",
			overlay: &graph.Overlay{FailedKeys: []string{"age", "age", "tags"}, Code: "BAD_PARAM_BOUNDARY"},
			contains: []string{
				`schema_signup(("signup <br/> BAD_PARAM_BOUNDARY"))`,
				"classDef failed",
				"class param_age failed;",
				"class param_tags failed;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid("signup", s, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
			if n := strings.Count(got, "class param_age failed;"); n > 1 {
				t.Errorf("failed class applied %d times", n)
			}
		})
	}
}
