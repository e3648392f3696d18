package template

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aikawa-h/instapipe/utils/config"
)

// SchemaError reports a catalog entry or stage output that is missing a
// required field, or a template name that does not exist in the catalog.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string {
	return e.Msg
}

// WritingStyle is the tone/formatting descriptor guiding final text
// generation. Values are free text, not enumerated by the system.
type WritingStyle struct {
	Tone           string `yaml:"tone" json:"tone,omitempty"`
	EmojiUsage     string `yaml:"emoji_usage" json:"emoji_usage,omitempty"`
	SentenceLength string `yaml:"sentence_length" json:"sentence_length,omitempty"`
	Formatting     string `yaml:"formatting" json:"formatting,omitempty"`
	Punctuation    string `yaml:"punctuation" json:"punctuation,omitempty"`
}

// IsZero reports whether no style field is set.
func (w WritingStyle) IsZero() bool {
	return w == WritingStyle{}
}

// Template is a named reusable content pattern for generating a caption.
type Template struct {
	Name             string       `yaml:"name" json:"name"`
	CaptionStructure []string     `yaml:"caption_structure" json:"caption_structure,omitempty"`
	WritingStyle     WritingStyle `yaml:"writing_style" json:"writing_style,omitempty"`
	HashtagPattern   []string     `yaml:"hashtag_pattern" json:"hashtag_pattern,omitempty"`
	ExampleStructure []string     `yaml:"example_structure" json:"example_structure,omitempty"`
	ExampleCaption   string       `yaml:"example_caption" json:"example_caption,omitempty"`
}

// Catalog is an ordered collection of templates.
type Catalog struct {
	Categories []Template `yaml:"categories" json:"categories"`
}

// ReducedCatalog mirrors Catalog with each template cut down to a field
// subset, for embedding into prompts.
type ReducedCatalog struct {
	Categories []map[string]interface{} `json:"categories"`
}

// LoadCatalog reads a template catalog from a yaml file. Every template must
// have a non-empty name; a nameless entry is fatal here rather than at lookup
// time.
func LoadCatalog(path string) (Catalog, error) {
	config.DebugLog("Loading template catalog from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("error reading template catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("error parsing template catalog: %w", err)
	}

	for i, tmpl := range catalog.Categories {
		if tmpl.Name == "" {
			return Catalog{}, &SchemaError{Msg: fmt.Sprintf("template catalog entry %d has no name", i)}
		}
	}

	config.DebugLog("Loaded %d template(s)", len(catalog.Categories))
	return catalog, nil
}

// SaveCatalog writes the catalog back to a yaml file.
func SaveCatalog(path string, catalog Catalog) error {
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("error marshaling template catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing template catalog: %w", err)
	}
	return nil
}

// Reduce returns a new catalog containing, for every template, only the
// requested fields. A reduced entry that lacks a name would make later lookup
// impossible, so that is a schema error.
func (c Catalog) Reduce(fields []string) (ReducedCatalog, error) {
	reduced := ReducedCatalog{Categories: make([]map[string]interface{}, 0, len(c.Categories))}

	for _, tmpl := range c.Categories {
		data, err := json.Marshal(tmpl)
		if err != nil {
			return ReducedCatalog{}, fmt.Errorf("error encoding template %s: %w", tmpl.Name, err)
		}
		var full map[string]interface{}
		if err := json.Unmarshal(data, &full); err != nil {
			return ReducedCatalog{}, fmt.Errorf("error decoding template %s: %w", tmpl.Name, err)
		}

		entry := make(map[string]interface{}, len(fields))
		for _, field := range fields {
			if value, ok := full[field]; ok {
				entry[field] = value
			}
		}

		if name, ok := entry["name"].(string); !ok || name == "" {
			return ReducedCatalog{}, &SchemaError{Msg: fmt.Sprintf("reduced template has no name: %v", full)}
		}

		reduced.Categories = append(reduced.Categories, entry)
	}

	return reduced, nil
}

// Lookup returns the first template whose name matches. Catalog order is
// preserved; names are expected, not required, to be unique.
func (c Catalog) Lookup(name string) (Template, error) {
	for _, tmpl := range c.Categories {
		if tmpl.Name == name {
			return tmpl, nil
		}
	}
	return Template{}, &SchemaError{Msg: fmt.Sprintf("template %q not found in catalog", name)}
}

// WritingStyleFor returns the writing style of the named template. A missing
// template or an empty style is a schema error.
func (c Catalog) WritingStyleFor(name string) (WritingStyle, error) {
	tmpl, err := c.Lookup(name)
	if err != nil {
		return WritingStyle{}, err
	}
	if tmpl.WritingStyle.IsZero() {
		return WritingStyle{}, &SchemaError{Msg: fmt.Sprintf("template %q has no writing_style", name)}
	}
	return tmpl.WritingStyle, nil
}
