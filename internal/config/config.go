package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultServer  = "localhost:11434"
	DefaultModel   = "DeepSeek-R1"
	DefaultTimeout = 300 * time.Second

	// EnvPrefix is prepended to every key when reading environment variables,
	// e.g. SUMMARIZE_SERVER.
	EnvPrefix = "SUMMARIZE"
)

// API selects which endpoint family the request is sent to.
type API string

const (
	// APIGenerate is Ollama's native /api/generate endpoint.
	APIGenerate API = "generate"
	// APIOpenAI is the OpenAI-compatible /v1/chat/completions endpoint.
	APIOpenAI API = "openai"
)

// Request holds everything needed for a single summarization run.
type Request struct {
	Server       string
	Model        string
	DocumentPath string
	Prompt       string

	API     API
	Timeout time.Duration
}

// BaseURL returns the server address as an absolute URL without a trailing slash.
func (r Request) BaseURL() string {
	server := strings.TrimRight(r.Server, "/")
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return server
	}
	return "http://" + server
}

// Validate reports the first invalid field.
func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.Server) == "":
		return errors.New("server address must not be empty")
	case strings.TrimSpace(r.Model) == "":
		return errors.New("model must not be empty")
	case r.DocumentPath == "":
		return errors.New("document path must not be empty")
	case strings.TrimSpace(r.Prompt) == "":
		return errors.New("prompt must not be empty")
	case r.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", r.Timeout)
	}
	switch r.API {
	case APIGenerate, APIOpenAI:
	default:
		return fmt.Errorf("unknown api %q (expected %q or %q)", r.API, APIGenerate, APIOpenAI)
	}
	return nil
}

// Loader resolves option values from flags, then environment, then defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader bound to the given flag set. Flags named
// server, model, api and timeout are looked up if present.
func NewLoader(flags *pflag.FlagSet) (*Loader, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("server", DefaultServer)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api", string(APIGenerate))
	v.SetDefault("timeout", DefaultTimeout)

	for _, name := range []string{"server", "model", "api", "timeout"} {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(name, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return &Loader{v: v}, nil
}

// Load builds a validated Request for the given document and prompt words.
func (l *Loader) Load(documentPath string, promptWords []string) (Request, error) {
	req := Request{
		Server:       l.v.GetString("server"),
		Model:        l.v.GetString("model"),
		DocumentPath: documentPath,
		Prompt:       strings.Join(promptWords, " "),
		API:          API(strings.ToLower(l.v.GetString("api"))),
		Timeout:      l.v.GetDuration("timeout"),
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}
