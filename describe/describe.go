// Package describe fetches descriptive prose and theory for a data
// structure from a text-generation model.
//
// Provider.Fetch never fails: a missing key, a network error, or a reply
// that does not match the info schema all yield Fallback(). Successful
// replies are cached per structure name.
package describe

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrMissingAPIKey is returned by NewGeminiGenerator without a key.
	ErrMissingAPIKey = errors.New("describe: API key not set")
	// ErrInvalidInfo is returned by Parse for replies that fail the schema.
	ErrInvalidInfo = errors.New("describe: reply does not match info schema")
)

//go:embed info-schema.json
var infoSchema []byte

const fallbackDescription = "Error fetching description. Please check your API key and network connection."

const notAvailable = "N/A"

// Theory holds the markdown sections of an Info.
type Theory struct {
	TimeComplexity    string `json:"timeComplexity"`
	SpaceComplexity   string `json:"spaceComplexity"`
	UseCases          string `json:"useCases"`
	RealWorldExamples string `json:"realWorldExamples"`
}

// Info is the descriptive payload for one structure.
type Info struct {
	Description string `json:"description"`
	Theory      Theory `json:"theory"`
}

// Fallback is returned whenever the model cannot be reached or answers badly.
func Fallback() Info {
	return Info{
		Description: fallbackDescription,
		Theory: Theory{
			TimeComplexity:    notAvailable,
			SpaceComplexity:   notAvailable,
			UseCases:          notAvailable,
			RealWorldExamples: notAvailable,
		},
	}
}

// IsFallback reports whether info is the fallback payload.
func (i Info) IsFallback() bool { return i == Fallback() }

// Prompt returns the request sent to the model for name.
func Prompt(name string) string {
	return fmt.Sprintf(`Provide a high-level description and detailed theory for the %s data structure.
The theory section must include:
1. A "Time Complexity" markdown table for major operations (e.g., Access, Search, Insertion, Deletion) covering Best, Average, and Worst cases.
2. A "Space Complexity" description.
3. A bulleted list of "Use Cases".
4. A bulleted list of "Real-world Examples".
Format the output as JSON using the provided schema.`, name)
}

// Parse validates raw against the info schema and decodes it.
func Parse(raw string) (Info, error) {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(infoSchema), gojsonschema.NewStringLoader(raw))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidInfo, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}

		return Info{}, fmt.Errorf("%w: %s", ErrInvalidInfo, strings.Join(msgs, "; "))
	}

	var info Info
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidInfo, err)
	}

	return info, nil
}

// Generator produces the raw JSON reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Option configures a Provider.
type Option func(*Provider)

// WithTimeout bounds each Generate call.
func WithTimeout(d time.Duration) Option { return func(p *Provider) { p.timeout = d } }

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option { return func(p *Provider) { p.logger = l } }

// WithObserver registers fn, called after every Fetch with whether the
// fallback was served.
func WithObserver(fn func(fallback bool)) Option { return func(p *Provider) { p.observe = fn } }

// Provider is the descriptive-info boundary. It is safe for concurrent use.
type Provider struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
	observe func(fallback bool)

	mu    sync.Mutex
	cache map[string]Info
}

// NewProvider returns a Provider backed by gen. A nil gen always serves the
// fallback.
func NewProvider(gen Generator, opts ...Option) *Provider {
	p := &Provider{
		gen:     gen,
		timeout: 30 * time.Second,
		logger:  slog.Default(),
		observe: func(bool) {},
		cache:   map[string]Info{},
	}
	for _, o := range opts {
		o(p)
	}

	return p
}

// Fetch returns the info for name, or Fallback on any failure.
func (p *Provider) Fetch(ctx context.Context, name string) Info {
	p.mu.Lock()
	cached, ok := p.cache[name]
	p.mu.Unlock()
	if ok {
		p.observe(false)
		return cached
	}

	info, err := p.fetch(ctx, name)
	if err != nil {
		p.logger.WarnContext(ctx, "describe fallback", "structure", name, "error", err)
		p.observe(true)

		return Fallback()
	}

	p.mu.Lock()
	p.cache[name] = info
	p.mu.Unlock()
	p.observe(false)

	return info
}

func (p *Provider) fetch(ctx context.Context, name string) (Info, error) {
	if p.gen == nil {
		return Info{}, ErrMissingAPIKey
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	raw, err := p.gen.Generate(ctx, Prompt(name))
	if err != nil {
		return Info{}, fmt.Errorf("generate: %w", err)
	}

	return Parse(raw)
}
