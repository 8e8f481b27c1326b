package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/aretw0/paramspec/pkg/catalog"
	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/muesli/termenv"
)

// CheckOptions configures RunCheck.
type CheckOptions struct {
	Mode    OutputMode
	Profile termenv.Profile
	Stdin   io.Reader
}

// RunCheck validates the payload file at path against the named schema and
// writes the report to out. A file that holds no object is reported as
// MISSING_JSON_BODY. err is set only when no verdict could be produced.
func RunCheck(ctx context.Context, c *catalog.Catalog, name, path string, out io.Writer, opts CheckOptions) (Report, error) {
	if _, err := c.Lookup(name); err != nil {
		return Report{}, err
	}

	var rep Report
	p, err := LoadPayload(path, opts.Stdin)
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &pathErr):
		return Report{}, err
	case err != nil:
		rep = Report{
			Schema:  name,
			Source:  path,
			Status:  schema.StatusBadRequest,
			Code:    string(schema.CodeMissingJSONBody),
			Message: schema.MsgMissingJSONBody,
		}
	default:
		res, err := c.Validate(ctx, name, p)
		if err != nil {
			return Report{}, err
		}
		rep = NewReport(name, path, res)
	}

	if err := WriteReport(out, rep, opts.Mode, opts.Profile); err != nil {
		return rep, err
	}
	return rep, nil
}
