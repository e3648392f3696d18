package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testCatalog() Catalog {
	return Catalog{Categories: []Template{
		{
			Name:             "product",
			CaptionStructure: []string{"intro", "features", "closing", "hashtags"},
			WritingStyle: WritingStyle{
				Tone:           "friendly & supportive",
				EmojiUsage:     "moderate",
				SentenceLength: "short",
				Formatting:     "line breaks between sections",
				Punctuation:    "exclamation marks welcome",
			},
			HashtagPattern: []string{"#industry", "#service"},
			ExampleCaption: "Try our new latte!",
		},
		{
			Name:             "event",
			CaptionStructure: []string{"announcement", "details", "call to action"},
			WritingStyle:     WritingStyle{Tone: "energetic"},
		},
	}}
}

func TestCatalogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	original := testCatalog()

	if err := SaveCatalog(path, original); err != nil {
		t.Fatalf("SaveCatalog() error: %v", err)
	}

	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}

	if len(loaded.Categories) != 2 {
		t.Fatalf("loaded %d templates, want 2", len(loaded.Categories))
	}
	if loaded.Categories[0].Name != "product" {
		t.Errorf("first template = %q, want %q", loaded.Categories[0].Name, "product")
	}
	if loaded.Categories[0].WritingStyle.Tone != "friendly & supportive" {
		t.Errorf("tone = %q, want %q", loaded.Categories[0].WritingStyle.Tone, "friendly & supportive")
	}
	if loaded.Categories[0].ExampleCaption != "Try our new latte!" {
		t.Errorf("example caption = %q, want it preserved verbatim", loaded.Categories[0].ExampleCaption)
	}
}

func TestLoadCatalogNamelessEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	data := []byte("categories:\n  - caption_structure:\n      - intro\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCatalog(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("LoadCatalog() error type = %T, want *SchemaError", err)
	}
}

func TestReduce(t *testing.T) {
	catalog := testCatalog()

	reduced, err := catalog.Reduce([]string{"name", "caption_structure"})
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	if len(reduced.Categories) != len(catalog.Categories) {
		t.Fatalf("reduced %d entries, want %d", len(reduced.Categories), len(catalog.Categories))
	}
	for i, entry := range reduced.Categories {
		if entry["name"] != catalog.Categories[i].Name {
			t.Errorf("entry %d name = %v, want %q", i, entry["name"], catalog.Categories[i].Name)
		}
		if _, ok := entry["caption_structure"]; !ok {
			t.Errorf("entry %d missing caption_structure", i)
		}
		if _, ok := entry["writing_style"]; ok {
			t.Errorf("entry %d kept writing_style despite the field subset", i)
		}
	}
}

func TestReduceDroppingNameFails(t *testing.T) {
	catalog := testCatalog()

	_, err := catalog.Reduce([]string{"caption_structure"})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Reduce() error type = %T, want *SchemaError", err)
	}
}

func TestLookup(t *testing.T) {
	catalog := testCatalog()

	tmpl, err := catalog.Lookup("event")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if tmpl.Name != "event" {
		t.Errorf("Lookup() returned %q, want %q", tmpl.Name, "event")
	}

	_, err = catalog.Lookup("nonexistent")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Lookup() error type = %T, want *SchemaError", err)
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	catalog := Catalog{Categories: []Template{
		{Name: "dup", ExampleCaption: "first"},
		{Name: "dup", ExampleCaption: "second"},
	}}

	tmpl, err := catalog.Lookup("dup")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if tmpl.ExampleCaption != "first" {
		t.Errorf("Lookup() returned %q, want the first matching entry", tmpl.ExampleCaption)
	}
}

func TestWritingStyleFor(t *testing.T) {
	catalog := testCatalog()
	catalog.Categories = append(catalog.Categories, Template{Name: "bare"})

	style, err := catalog.WritingStyleFor("product")
	if err != nil {
		t.Fatalf("WritingStyleFor() error: %v", err)
	}
	if style.Tone != "friendly & supportive" {
		t.Errorf("tone = %q, want %q", style.Tone, "friendly & supportive")
	}

	if _, err := catalog.WritingStyleFor("bare"); err == nil {
		t.Error("WritingStyleFor() expected error for template without a style")
	}
	if _, err := catalog.WritingStyleFor("nonexistent"); err == nil {
		t.Error("WritingStyleFor() expected error for unknown template")
	}
}
