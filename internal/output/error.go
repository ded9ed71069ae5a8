package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// ErrorOutput is the JSON envelope written for a failed command.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the rendered form of a CyclicError.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// Describe flattens err into an ErrorDetail. Errors that are not a
// CyclicError are reported as GENERAL_ERROR with their full text.
func Describe(err error) ErrorDetail {
	var ce *cyclicerr.CyclicError
	if !cyclicerr.As(err, &ce) {
		return ErrorDetail{
			Code:     cyclicerr.Code(err),
			Message:  err.Error(),
			ExitCode: cyclicerr.ExitCode(err),
		}
	}
	return ErrorDetail{
		Code:       ce.Code,
		Message:    ce.Message,
		Details:    ce.Details,
		Suggestion: ce.Suggestion,
		ExitCode:   ce.ExitCode,
	}
}

// FormatError writes err to w in the given format. A nil err writes nothing.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}
	d := Describe(err)
	if format == FormatJSON {
		return WriteJSON(w, ErrorOutput{Error: d})
	}
	_, werr := io.WriteString(w, d.text())
	return werr
}

func (d ErrorDetail) text() string {
	var sb strings.Builder
	sb.WriteString("Error: " + d.Message + "\n")
	if len(d.Details) > 0 {
		sb.WriteString("\nDetails:\n")
		for _, k := range slices.Sorted(maps.Keys(d.Details)) {
			fmt.Fprintf(&sb, "  %s: %s\n", k, d.Details[k])
		}
	}
	if d.Suggestion != "" {
		sb.WriteString("\nSuggestion: " + d.Suggestion + "\n")
	}
	return sb.String()
}
