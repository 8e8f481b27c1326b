package paramspec_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	httpAdapter "github.com/aretw0/paramspec/pkg/adapters/http"
	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/schema"
)

// Example_catalog registers a schema under a name and validates against it.
func Example_catalog() {
	c := catalog.New()
	c.MustRegister("point", schema.NewBuilder().
		MustRegister("x", schema.Float, true, schema.WithBounds(-1, 1)).
		MustRegister("y", schema.Float, true, schema.WithBounds(-1, 1)).
		Build())

	res, err := c.Validate(context.Background(), "point", schema.NewPayload().Set("x", 0.5).Set("y", 2.0))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res)

	// Output:
	// 400 BAD_PARAM_BOUNDARY: Failed to check constrains for parameter: y; Expect values between -1 and 1 but got: 2
}

// Example_middleware guards an HTTP handler with a schema.
func Example_middleware() {
	s := schema.NewBuilder().
		MustRegister("name", schema.String, true).
		Build()

	h := httpAdapter.Middleware(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		_ = httpAdapter.Bind(r.Context(), &body)
		fmt.Fprintf(w, "hello %s", body.Name)
	}))

	for _, payload := range []string{`{"name": "ada"}`, `{"name": 7}`, ``} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))
		fmt.Println(w.Code, strings.TrimSpace(w.Body.String()))
	}

	// Output:
	// 200 hello ada
	// 400 {"status":400,"code":"BAD_PARAM_TYPE","key":"name","message":"Input type error for parameter: name; Expected: string but got int64"}
	// 400 {"status":400,"code":"MISSING_JSON_BODY","message":"Missing JSON object in body"}
}
