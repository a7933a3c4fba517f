package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Metadata describes where an article came from and how its text was obtained.
// It is written next to the cleaned text by the ingest command.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Host      string `json:"host,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339, UTC
	Hash      string `json:"hash"`      // sha256 of the cleaned text
	WordCount int    `json:"word_count"`
	Platform  string `json:"platform,omitempty"`
	Title     string `json:"title,omitempty"`
	Byline    string `json:"byline,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
	Extractor string `json:"extractor,omitempty"`
}

// NewMetadata stamps content with its hash, word count and ingestion time.
func NewMetadata(content string, pageURL string) *Metadata {
	m := &Metadata{
		URL:       pageURL,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		WordCount: len(strings.Fields(content)),
	}
	if u, err := url.Parse(pageURL); err == nil {
		m.Host = strings.TrimPrefix(u.Hostname(), "www.")
	}
	return m
}

// ApplyArticle copies the descriptive fields of an extracted article.
func (m *Metadata) ApplyArticle(article *Article) {
	m.Title = article.Title
	m.Byline = article.Byline
	m.SiteName = article.SiteName
	m.Extractor = string(article.Extractor)
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ToJSON returns the indented JSON form written to metadata.json.
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}
