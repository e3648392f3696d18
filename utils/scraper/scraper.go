package scraper

import (
	"strings"

	"github.com/gocolly/colly/v2"
)

// Scraper pulls readable page text for retrieval enrichment.
type Scraper struct {
	userAgent string
	maxRunes  int
}

// NewScraper creates a new scraper instance with default configuration
func NewScraper() *Scraper {
	return &Scraper{
		userAgent: "Mozilla/5.0 (compatible; Instapipe/1.0; +http://github.com/aikawa-h/instapipe)",
		maxRunes:  600,
	}
}

// SetExcerptLimit caps the excerpt length in runes.
func (s *Scraper) SetExcerptLimit(maxRunes int) {
	if maxRunes > 0 {
		s.maxRunes = maxRunes
	}
}

// PageText visits the URL and returns a capped excerpt of its paragraph
// text. Each call uses a fresh collector so scraped state never leaks
// between queries.
func (s *Scraper) PageText(url string) (string, error) {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent(s.userAgent),
	)

	var paragraphs []string
	c.OnHTML("p", func(e *colly.HTMLElement) {
		if text := strings.TrimSpace(e.Text); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if err := c.Visit(url); err != nil {
		return "", err
	}

	text := strings.Join(paragraphs, " ")
	runes := []rune(text)
	if len(runes) > s.maxRunes {
		text = string(runes[:s.maxRunes])
	}
	return text, nil
}
