// Package locale provides the UI label bundles. English, Russian and Uzbek
// are built in; extra bundles may be loaded from a directory. Every bundle is
// validated against an embedded JSON schema before use.
package locale

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

//go:embed bundles/*.json
var bundleFS embed.FS

const schemaFile = "bundles/labels.schema.json"

// DefaultCode is the fallback bundle.
const DefaultCode = "en"

// builtinCodes lists the embedded bundles. The first entry is the matcher's
// fallback.
var builtinCodes = []string{"en", "ru", "uz"}

// Locale errors.
var (
	ErrUnknownLocale = errors.New("unknown locale")
	ErrInvalidBundle = errors.New("invalid label bundle")
)

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// Labels holds the display strings of one bundle.
type Labels struct {
	Language         string `json:"language"`
	InputPlaceholder string `json:"inputPlaceholder"`
	AddButton        string `json:"addButton"`
	EmptyFieldError  string `json:"emptyFieldError"`
	DuplicateError   string `json:"duplicateError"`
	CategoryError    string `json:"categoryError"`
	UpdatePrompt     string `json:"updatePrompt"`
	All              string `json:"all"`
	Groceries        string `json:"groceries"`
	College          string `json:"college"`
	Payments         string `json:"payments"`
	AllTasks         string `json:"allTasks"`
}

// Bundle is a validated label set for one language.
type Bundle struct {
	Code   string
	Tag    language.Tag
	Labels Labels
}

// Category returns the display name of c.
func (b *Bundle) Category(c types.Category) string {
	switch c {
	case types.CategoryAll:
		return b.Labels.All
	case types.CategoryGroceries:
		return b.Labels.Groceries
	case types.CategoryCollege:
		return b.Labels.College
	case types.CategoryPayments:
		return b.Labels.Payments
	}
	return string(c)
}

// Error returns the user-facing message for err, or "" when err has none.
func (b *Bundle) Error(err error) string {
	switch {
	case errors.Is(err, types.ErrEmptyInput):
		return b.Labels.EmptyFieldError
	case errors.Is(err, types.ErrDuplicate):
		return b.Labels.DuplicateError
	case errors.Is(err, types.ErrInvalidCategory):
		return b.Labels.CategoryError
	}
	return ""
}

// Printer formats numbers and messages for the bundle's language.
func (b *Bundle) Printer() *message.Printer {
	return message.NewPrinter(b.Tag)
}

// Registry holds the available bundles.
type Registry struct {
	bundles map[string]*Bundle
	codes   []string
	matcher language.Matcher
}

// Builtin returns a registry with the embedded bundles.
func Builtin() (*Registry, error) {
	r := &Registry{bundles: make(map[string]*Bundle)}
	for _, code := range builtinCodes {
		data, err := bundleFS.ReadFile("bundles/" + code + ".json")
		if err != nil {
			return nil, fmt.Errorf("reading built-in bundle %s: %w", code, err)
		}
		b, err := Parse(code, data)
		if err != nil {
			return nil, err
		}
		r.add(b)
	}
	return r, nil
}

// LoadDir adds every <code>.json bundle in dir, replacing built-ins with the
// same code. A missing directory is not an error.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		b, err := Parse(strings.TrimSuffix(e.Name(), ".json"), data)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		r.add(b)
	}
	return nil
}

func (r *Registry) add(b *Bundle) {
	if _, ok := r.bundles[b.Code]; !ok {
		r.codes = append(r.codes, b.Code)
	}
	r.bundles[b.Code] = b
	tags := make([]language.Tag, len(r.codes))
	for i, c := range r.codes {
		tags[i] = r.bundles[c].Tag
	}
	r.matcher = language.NewMatcher(tags)
}

// Codes returns the registered bundle codes in registration order.
func (r *Registry) Codes() []string {
	return slices.Clone(r.codes)
}

// Get returns the bundle registered under code.
func (r *Registry) Get(code string) (*Bundle, error) {
	b, ok := r.bundles[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	return b, nil
}

// Match returns the bundle closest to the BCP 47 tag (or POSIX locale such
// as "ru_RU.UTF-8"). Unknown or empty tags yield the first registered bundle.
func (r *Registry) Match(tag string) *Bundle {
	if b, ok := r.bundles[tag]; ok {
		return b
	}
	fallback := r.bundles[r.codes[0]]
	tag = normalizePOSIX(tag)
	if tag == "" {
		return fallback
	}
	t, err := language.Parse(tag)
	if err != nil {
		return fallback
	}
	_, idx, conf := r.matcher.Match(t)
	if conf == language.No {
		return fallback
	}
	return r.bundles[r.codes[idx]]
}

// normalizePOSIX turns "ru_RU.UTF-8" into "ru-RU". "C" and "POSIX" mean no
// preference.
func normalizePOSIX(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Parse validates data against the label schema and decodes it. code must
// be a valid BCP 47 tag.
func Parse(code string, data []byte) (*Bundle, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("%w: bad language code %q", ErrInvalidBundle, code)
	}
	if err := validate(tag, data); err != nil {
		return nil, err
	}
	var labels Labels
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	return &Bundle{Code: code, Tag: tag, Labels: labels}, nil
}

// getSchema compiles the embedded label schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := bundleFS.ReadFile(schemaFile)
		if err != nil {
			compileErr = fmt.Errorf("reading schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("labels.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("labels.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

func validate(tag language.Tag, data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating bundle: %w", err)
	}
	return fmt.Errorf("%w: %s", ErrInvalidBundle, strings.Join(issues(ve, message.NewPrinter(tag)), "; "))
}

// issues flattens the leaf validation errors into readable lines.
func issues(ve *jsonschema.ValidationError, p *message.Printer) []string {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if ve.ErrorKind == nil {
			return []string{path + ": " + ve.Error()}
		}
		return []string{path + ": " + ve.ErrorKind.LocalizedString(p)}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, issues(c, p)...)
	}
	return out
}
