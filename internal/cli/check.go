package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mismatch/internal/cueschema"
	"github.com/roach88/mismatch/internal/report"
	"github.com/roach88/mismatch/internal/validate"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Definition string // CUE path of the definition to check against
	All        bool   // report every message instead of the first
	Query      string // jq expression selecting the checked sub-document
}

// CheckResult is the payload of a check.
type CheckResult struct {
	Schema     string   `json:"schema"`
	Data       string   `json:"data"`
	Definition string   `json:"definition"`
	Valid      bool     `json:"valid"`
	Messages   []string `json:"messages"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <schema> <data>",
		Short: "Check a document against a CUE definition",
		Long: `Check a JSON or YAML document against a CUE definition and report why it
does not conform.

The schema may be a single .cue file or a CUE package directory. By default
only the most relevant message is printed; --all prints every message.

Exit codes:
  0 - Document is valid
  1 - Document is invalid
  2 - Command error (unreadable schema or data, unknown definition, etc.)

Examples:
  mismatch check ./schema.cue config.yaml --def '#Config'
  mismatch check ./schemas data.json --def '#Order' --all
  mismatch check ./schema.cue deploy.json --def '#Service' --query '.services[0]'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Definition, "def", "", "CUE path of the definition, e.g. '#Config' (required)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "report every message")
	cmd.Flags().StringVar(&opts.Query, "query", "", "jq expression selecting the document to check")
	_ = cmd.MarkFlagRequired("def")

	return cmd
}

func runCheck(opts *CheckOptions, schemaPath, dataPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	root, err := LoadSchema(schemaPath)
	if err != nil {
		return commandError(formatter, "failed to load schema", err)
	}

	typ, err := cueschema.Lookup(root, opts.Definition)
	if err != nil {
		return commandError(formatter, "failed to resolve definition", convertSchemaError(err))
	}

	doc, err := ReadDocument(dataPath)
	if err != nil {
		return commandError(formatter, "failed to read data", err)
	}

	doc, err = ApplyQuery(cmd.Context(), opts.Query, doc)
	if err != nil {
		return commandError(formatter, "failed to apply query",
			&LoadError{Code: ErrCodeQueryFailed, Message: err.Error(), Err: err})
	}

	formatter.VerboseLog("checking %s against %s in %s", dataPath, opts.Definition, schemaPath)

	reportOpts := []report.Option{report.WithLogger(newLogger(opts.RootOptions, formatter.GetErrWriter()))}
	var reporter report.Reporter = report.FirstReporter{Options: reportOpts}
	if opts.All {
		reporter = report.AllReporter{Options: reportOpts}
	}

	res := validate.Decode(typ, doc)
	result := CheckResult{
		Schema:     schemaPath,
		Data:       dataPath,
		Definition: opts.Definition,
		Valid:      res.OK(),
		Messages:   reporter.Report(res),
	}
	if result.Messages == nil {
		result.Messages = []string{}
	}

	if opts.Format == "json" {
		return outputCheckJSON(formatter, result)
	}
	return outputCheckText(cmd, result)
}

func outputCheckJSON(f *OutputFormatter, result CheckResult) error {
	resp := CLIResponse{Status: "ok", Data: result}
	if !result.Valid {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    ErrCodeInvalid,
			Message: fmt.Sprintf("%s does not match %s", result.Data, result.Definition),
		}
	}
	if err := f.Respond(resp); err != nil {
		return err
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "document is invalid")
	}
	return nil
}

func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	if result.Valid {
		fmt.Fprintln(w, renderOK(fmt.Sprintf("%s matches %s", result.Data, result.Definition)))
		return nil
	}

	fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("%s does not match %s", result.Data, result.Definition)))
	for _, msg := range result.Messages {
		fmt.Fprintln(w, "  "+renderError(msg))
	}
	return NewExitError(ExitFailure, "document is invalid")
}

// commandError reports err through the formatter and returns an exit error
// carrying ExitCommandError.
func commandError(f *OutputFormatter, message string, err error) error {
	code := ErrCodeGeneric
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
	}
	if outErr := f.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, message, err)
}
