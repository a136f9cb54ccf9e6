package markdown

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/x"
)

// ExportOptions contains configuration for markdown export
type ExportOptions struct {
	OutputDir string
}

type Frontmatter struct {
	Title     string   `yaml:"title"`
	URL       string   `yaml:"url"`
	Browser   string   `yaml:"browser"`
	Folder    string   `yaml:"folder,omitempty"`
	CreatedAt string   `yaml:"created_at,omitempty"`
	ID        string   `yaml:"id"`
	Tags      []string `yaml:"tags,omitempty"`
}

// String renders the frontmatter block, skipping empty fields
func (f Frontmatter) String() string {
	var sb strings.Builder

	writeKV := func(key string, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", key, strconv.Quote(value)))
		}
	}

	writeList := func(key string, values []string) {
		if len(values) > 0 {
			quoted := make([]string, len(values))
			for i, v := range values {
				quoted[i] = strconv.Quote(v)
			}
			sb.WriteString(fmt.Sprintf("%s: [%s]\n", key, strings.Join(quoted, ", ")))
		}
	}

	sb.WriteString("---\n")
	writeKV("title", f.Title)
	writeKV("url", f.URL)
	writeKV("browser", f.Browser)
	writeKV("folder", f.Folder)
	writeKV("created_at", f.CreatedAt)
	writeKV("id", f.ID)
	writeList("tags", f.Tags)
	sb.WriteString("---")

	return sb.String()
}

// ExportStats summarizes an export run.
type ExportStats struct {
	Written int
	Skipped int
}

// Exporter writes bookmarks as markdown notes
type Exporter struct {
	outputDir string
	cache     Cache
}

// NewExporter creates a new markdown exporter
func NewExporter(opts ExportOptions, cache Cache) *Exporter {
	if cache == nil {
		cache = make(Cache)
	}
	return &Exporter{
		outputDir: opts.OutputDir,
		cache:     cache,
	}
}

// NoteID identifies a bookmark note across exports.
func NoteID(r bookmarks.Record) string {
	return x.Key(string(r.Browser), r.Folder, r.URL)
}

// Export writes a note for every record not exported before.
func (e *Exporter) Export(records iter.Seq[bookmarks.Record]) (ExportStats, error) {
	var stats ExportStats
	for r := range records {
		id := NoteID(r)
		if _, exists := e.cache[id]; exists {
			stats.Skipped++
			continue
		}

		path, err := e.writeNote(r, id)
		if err != nil {
			return stats, fmt.Errorf("failed to export %q: %w", r.URL, err)
		}
		e.cache[id] = path
		stats.Written++
	}

	slog.Info("exported bookmarks", "dir", e.outputDir, "written", stats.Written, "skipped", stats.Skipped)
	return stats, nil
}

func (e *Exporter) writeNote(r bookmarks.Record, id string) (string, error) {
	parts := []string{e.outputDir, string(r.Browser)}
	for _, folder := range bookmarks.SplitFolder(r.Folder) {
		parts = append(parts, sanitizeName(folder))
	}
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	matter := Frontmatter{
		Title:   r.Title,
		URL:     r.URL,
		Browser: string(r.Browser),
		Folder:  r.Folder,
		ID:      id,
		Tags:    []string{"bookmark"},
	}
	if t := r.AddedTime(); !t.IsZero() {
		matter.CreatedAt = t.Format("2006-01-02")
	}

	title := r.Title
	if title == "" {
		title = r.URL
	}
	content := fmt.Sprintf("%s\n# %s\n\n<%s>\n", matter.String(), title, r.URL)

	path := filepath.Join(dir, sanitizeFilename(r.Title, r.URL))
	if _, err := os.Stat(path); err == nil {
		// Same name, different bookmark.
		path = strings.TrimSuffix(path, ".md") + " " + id[:8] + ".md"
	}

	slog.Debug("writing markdown note", "title", r.Title, "path", path)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// sanitizeName replaces characters that are invalid in file names
func sanitizeName(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range invalid {
		name = strings.ReplaceAll(name, char, " ")
	}
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// sanitizeFilename creates a safe filename from bookmark title and URL
func sanitizeFilename(title string, url string) string {
	domain := extractDomain(url)
	title = sanitizeName(title)

	if domain != "" && !strings.HasPrefix(strings.ToLower(title), strings.ToLower(domain)) {
		return fmt.Sprintf("%s - %s.md", sanitizeName(domain), title)
	}
	return title + ".md"
}

// extractDomain extracts domain from URL
func extractDomain(url string) string {
	url = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	domain := strings.Split(url, "/")[0]
	domain = strings.TrimPrefix(domain, "www.")
	if colonIndex := strings.Index(domain, ":"); colonIndex != -1 {
		domain = domain[:colonIndex]
	}
	return domain
}
