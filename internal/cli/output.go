package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mcoot/chatlogin/internal/login"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	stdout io.Writer
	stderr io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, stdout, stderr io.Writer) *Output {
	return &Output{format: format, stdout: stdout, stderr: stderr}
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error. Login outcomes carry their outcome name in
// JSON output.
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]string{"message": err.Error()}
		var outcomeErr *OutcomeError
		if errors.As(err, &outcomeErr) {
			errData["outcome"] = login.Name(outcomeErr.Outcome)
		}
		data, _ := json.Marshal(map[string]any{"error": errData})
		_, _ = fmt.Fprintln(o.stderr, string(data))
	} else {
		_, _ = fmt.Fprintf(o.stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.stdout, string(data))
	} else {
		_, _ = fmt.Fprintln(o.stdout, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case login.User:
		o.printUser(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

func (o *Output) printUser(u login.User) {
	_, _ = fmt.Fprintf(o.stdout, "Logged in as %s\n", u.Field("username"))
	for _, key := range u.Keys() {
		if key == "username" {
			continue
		}
		_, _ = fmt.Fprintf(o.stdout, "  %s: %s\n", key, u.Display(key))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.stdout, "Status: %s\n", h.Status)
	if h.Storage != "" {
		_, _ = fmt.Fprintf(o.stdout, "Storage: %s\n", h.Storage)
	}
}
