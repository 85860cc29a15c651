// Package catalog provides the intent lookup table consumed by the engine:
// per-intent required/optional fields, validation rules, confirmation policy
// and tool lists. A catalog is immutable once built and safe for concurrent
// readers.
//
// Catalogs come from two places: the compiled-in banking set (Default) and
// YAML files (Load), which share the same schema shape.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/quorumbank/teller/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Catalog maps intent keys to schemas and doubles as a keyword-based
// classifier over the same set of intents.
type Catalog struct {
	schemas  map[string]*domain.IntentSchema
	keywords map[string][]string
	order    []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		schemas:  make(map[string]*domain.IntentSchema),
		keywords: make(map[string][]string),
	}
}

// Register adds a schema and its classification keywords.
// Registration order is the classifier's tie-break order.
func (c *Catalog) Register(schema *domain.IntentSchema, keywords ...string) {
	if _, exists := c.schemas[schema.Intent]; !exists {
		c.order = append(c.order, schema.Intent)
	}
	c.schemas[schema.Intent] = schema
	c.keywords[schema.Intent] = keywords
}

// GetSchema returns the schema for an intent key.
func (c *Catalog) GetSchema(ctx context.Context, intent string) (*domain.IntentSchema, error) {
	schema, ok := c.schemas[intent]
	if !ok {
		return nil, fmt.Errorf("intent %q: %w", intent, domain.ErrUnknownIntent)
	}
	return schema, nil
}

// Classify resolves an intent from raw text by keyword match. The intent
// with the most keyword hits wins; ties fall to registration order.
func (c *Catalog) Classify(ctx context.Context, text string) (string, error) {
	clean := strings.ToLower(text)

	best := ""
	bestScore := 0
	for _, intent := range c.order {
		score := 0
		for _, kw := range c.keywords[intent] {
			if strings.Contains(clean, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = intent, score
		}
	}
	if best == "" {
		return "", fmt.Errorf("no intent matched: %w", domain.ErrUnknownIntent)
	}
	return best, nil
}

// Intents returns the registered intent keys in registration order.
func (c *Catalog) Intents() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// File format for YAML catalogs.

type fileCatalog struct {
	Intents map[string]fileSchema `yaml:"intents"`
}

type fileSchema struct {
	Required          []string                  `yaml:"required"`
	Optional          []string                  `yaml:"optional"`
	Defaults          map[string]any            `yaml:"defaults"`
	Rules             map[string]map[string]any `yaml:"rules"`
	NeedsConfirmation bool                      `yaml:"needs_confirmation"`
	ReadTools         []string                  `yaml:"read_tools"`
	CommitTools       []string                  `yaml:"commit_tools"`
	MaxToolRetries    int                       `yaml:"max_tool_retries"`
	Prompts           map[string]string         `yaml:"prompts"`
	ConfirmPrompt     string                    `yaml:"confirm_prompt"`
	Response          string                    `yaml:"response"`
	Keywords          []string                  `yaml:"keywords"`
}

// Load reads a YAML catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var raw fileCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(raw.Intents) == 0 {
		return nil, fmt.Errorf("catalog declares no intents")
	}

	c := New()
	// Sort keys for a stable registration order; YAML maps are unordered.
	keys := make([]string, 0, len(raw.Intents))
	for k := range raw.Intents {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, intent := range keys {
		fs := raw.Intents[intent]
		schema, err := fs.toSchema(intent)
		if err != nil {
			return nil, fmt.Errorf("intent %q: %w", intent, err)
		}
		c.Register(schema, fs.Keywords...)
	}
	return c, nil
}

func (fs fileSchema) toSchema(intent string) (*domain.IntentSchema, error) {
	rules := make(map[string]domain.Rule, len(fs.Rules))
	for field, rawRule := range fs.Rules {
		var rule domain.Rule
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &rule,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(rawRule); err != nil {
			return nil, fmt.Errorf("rule for field %q: %w", field, err)
		}
		rules[field] = rule
	}

	return &domain.IntentSchema{
		Intent:            intent,
		RequiredFields:    fs.Required,
		OptionalFields:    fs.Optional,
		Defaults:          fs.Defaults,
		Rules:             rules,
		NeedsConfirmation: fs.NeedsConfirmation,
		ReadTools:         fs.ReadTools,
		CommitTools:       fs.CommitTools,
		MaxToolRetries:    fs.MaxToolRetries,
		Prompts:           fs.Prompts,
		ConfirmPrompt:     fs.ConfirmPrompt,
		ResponseTemplate:  fs.Response,
	}, nil
}
