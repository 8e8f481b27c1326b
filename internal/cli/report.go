package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/paramspec/internal/presentation/tui"
	"github.com/aretw0/paramspec/pkg/schema"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Report is the outcome of checking one payload file.
type Report struct {
	Schema    string   `json:"schema"`
	Source    string   `json:"source"`
	Status    int      `json:"status"`
	Code      string   `json:"code"`
	Key       string   `json:"key,omitempty"`
	Message   string   `json:"message,omitempty"`
	Offenders []string `json:"offenders,omitempty"`
}

// NewReport summarises res.
func NewReport(schemaName, source string, res schema.Result) Report {
	r := Report{Schema: schemaName, Source: source, Status: res.StatusCode(), Code: "OK"}
	f, failed := res.Failure()
	if !failed {
		return r
	}
	r.Code = string(f.Code)
	r.Key = f.Key
	if len(f.Keys) > 0 {
		r.Key = strings.Join(f.Keys, ",")
	}
	r.Message = f.Message
	for _, o := range f.Offenders {
		r.Offenders = append(r.Offenders, fmt.Sprint(o))
	}
	return r
}

// OK reports whether the payload was accepted.
func (r Report) OK() bool { return r.Status == schema.StatusOK }

// Verdict is the one-line status, e.g. "400 BAD_PARAM_BOUNDARY".
func (r Report) Verdict() string {
	return fmt.Sprintf("%d %s", r.Status, r.Code)
}

// Markdown renders the report for glamour.
func (r Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# paramspec check\n\n")
	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Schema | `%s` |\n", r.Schema)
	fmt.Fprintf(&sb, "| Source | `%s` |\n", SanitizeText(r.Source))
	fmt.Fprintf(&sb, "| Verdict | **%d** `%s` |\n", r.Status, r.Code)
	if r.Key != "" {
		fmt.Fprintf(&sb, "| Parameter | `%s` |\n", r.Key)
	}
	if r.Message != "" {
		fmt.Fprintf(&sb, "\n> %s\n", SanitizeText(r.Message))
	}
	return sb.String()
}

// OutputMode selects how a report is written.
type OutputMode int

const (
	OutputPlain OutputMode = iota
	OutputMarkdown
	OutputJSON
)

// ResolveOutputMode picks JSON when asked, markdown on a terminal and plain
// text otherwise.
func ResolveOutputMode(jsonOutput bool, out *os.File) OutputMode {
	switch {
	case jsonOutput:
		return OutputJSON
	case out != nil && term.IsTerminal(int(out.Fd())):
		return OutputMarkdown
	default:
		return OutputPlain
	}
}

// WriteReport writes r to w in the given mode. profile colours the plain
// verdict line; pass termenv.Ascii for none.
func WriteReport(w io.Writer, r Report, mode OutputMode, profile termenv.Profile) error {
	switch mode {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case OutputMarkdown:
		out, err := tui.NewRenderer()(r.Markdown())
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n", tui.Verdict(profile, r.OK(), r.Verdict()), r.Schema, SanitizeText(r.Source)); err != nil {
			return err
		}
		if r.Message != "" {
			_, err := fmt.Fprintf(w, "  %s\n", SanitizeText(r.Message))
			return err
		}
		return nil
	}
}
