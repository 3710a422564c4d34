// Package cli implements the summarize-document command line using Cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kznrluk/summarize-document/internal/app"
	"github.com/kznrluk/summarize-document/internal/config"
	"github.com/kznrluk/summarize-document/internal/extractor"
	"github.com/kznrluk/summarize-document/internal/llm"
)

// ErrArgument marks missing or invalid command-line input.
var ErrArgument = errors.New("invalid arguments")

const examples = `  summarize-document paper.pdf "Summarize this paper"
  summarize-document -m llama2 notes.txt "Extract key points"
  summarize-document -s myserver:11434 document.pdf "Analyze this document"`

// NewRootCommand builds the command. Results and help go to stdout, logs to
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize-document [flags] DOCUMENT PROMPT...",
		Short: "Summarize documents using an Ollama LLM",
		Long: `summarize-document extracts text from a document (PDF or text file) and sends
it, together with your prompt, to an Ollama server for summarization or analysis.

Supported file types:
  - PDF (.pdf)
  - Text files (` + strings.Join(extractor.SupportedExtensions()[1:], ", ") + `, or no extension)

Every flag can also be set through the environment, e.g. SUMMARIZE_SERVER,
SUMMARIZE_MODEL, SUMMARIZE_API and SUMMARIZE_TIMEOUT.`,
		Example:       examples,
		Args:          requireDocumentAndPrompt,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringP("server", "s", config.DefaultServer, "Ollama server address (host:port)")
	flags.StringP("model", "m", config.DefaultModel, "model to use")
	flags.String("api", string(config.APIGenerate), `endpoint family: "generate" (/api/generate) or "openai" (/v1/chat/completions)`)
	flags.Duration("timeout", config.DefaultTimeout, "request timeout")
	flags.BoolP("quiet", "q", false, "only log warnings and errors")
	flags.BoolP("verbose", "v", false, "log debug output")
	cmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrArgument, err)
	})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func requireDocumentAndPrompt(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return fmt.Errorf("%w: the following arguments are required: DOCUMENT, PROMPT", ErrArgument)
	case 1:
		return fmt.Errorf("%w: the following arguments are required: PROMPT", ErrArgument)
	}
	return nil
}

func run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	loader, err := config.NewLoader(cmd.Flags())
	if err != nil {
		return err
	}
	req, err := loader.Load(args[0], args[1:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArgument, err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := newLogger(stderr, quiet, verbose)

	application := app.NewApp(extractor.NewFileExtractor(log), newLLM(req, log), log)

	log.Debug().Str("document", req.DocumentPath).Str("api", string(req.API)).Msg("Processing document")
	result, err := application.Summarize(cmd.Context(), req.DocumentPath, req.Prompt)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, result)
	return nil
}

func newLLM(req config.Request, log zerolog.Logger) llm.LLM {
	opts := []llm.Option{llm.WithTimeout(req.Timeout), llm.WithLogger(log)}
	if req.API == config.APIOpenAI {
		return llm.NewOpenAIClient(req.BaseURL(), req.Model, opts...)
	}
	return llm.NewOllamaClient(req.BaseURL(), req.Model, opts...)
}

func newLogger(w io.Writer, quiet, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.WarnLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(level)
}

// Execute runs the command with args and returns the process exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	if args == nil {
		// Cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, ErrArgument) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
