package felog

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/labstack/echo/v4"

	"github.com/elvismelkic/felog/markdown"
)

const summaryLength = 200

// postFrontMatter is the metadata block at the top of a markdown post.
type postFrontMatter struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Date        string   `yaml:"date" toml:"date" json:"date"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
	Category    string   `yaml:"category" toml:"category" json:"category"`
	Summary     string   `yaml:"summary" toml:"summary" json:"summary"`
	Slug        string   `yaml:"slug" toml:"slug" json:"slug"`
	ExternalURL string   `yaml:"externalUrl" toml:"externalUrl" json:"externalUrl"`
	Draft       bool     `yaml:"draft" toml:"draft" json:"draft"`
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Importer loads markdown files with front matter into a Store.
type Importer struct {
	Store  *Store
	Logger echo.Logger // optional
}

// ImportDir imports every .md file under dir and returns how many posts
// were saved. It stops at the first file that fails.
func (im *Importer) ImportDir(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		post, err := ParsePostFile(path)
		if err != nil {
			return err
		}
		if err := im.Store.SavePost(post); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		count++
		if im.Logger != nil {
			im.Logger.Infof("imported %s as %s", path, post.Link)
		}
		return nil
	})
	return count, err
}

// ParsePostFile reads one markdown file into a BlogPost.
//
// The slug comes from front matter, else from the parent directory for
// index.md files, else from the file name. A missing date falls back to the
// file's modification time and a missing summary to the first paragraph.
func ParsePostFile(path string) (BlogPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlogPost{}, fmt.Errorf("read %s: %w", path, err)
	}
	var fm postFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return BlogPost{}, fmt.Errorf("front matter %s: %w", path, err)
	}

	slug := Slugify(fm.Slug)
	if slug == "" {
		slug = Slugify(slugFromPath(path))
	}
	if slug == "" {
		return BlogPost{}, fmt.Errorf("%s: cannot derive a slug", path)
	}

	date, err := normalizeDate(fm.Date)
	if err != nil {
		return BlogPost{}, fmt.Errorf("%s: %w", path, err)
	}
	if date == "" {
		info, err := os.Stat(path)
		if err != nil {
			return BlogPost{}, err
		}
		date = info.ModTime().Format("2006-01-02")
	}

	tags := FilterEmpty(fm.Tags)
	if len(tags) == 0 && strings.TrimSpace(fm.Category) != "" {
		tags = []string{strings.TrimSpace(fm.Category)}
	}

	content := strings.TrimSpace(string(body))
	summary := strings.TrimSpace(fm.Summary)
	if summary == "" {
		summary = markdown.Summary(content, summaryLength)
	}

	externalURL := strings.TrimSpace(fm.ExternalURL)
	if externalURL != "" && !validExternalURL(externalURL) {
		return BlogPost{}, fmt.Errorf("%s: externalUrl %q is not an absolute http(s) URL", path, externalURL)
	}

	return BlogPost{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Date:        date,
		Tags:        tags,
		Summary:     summary,
		Content:     content,
		Link:        postLink(slug),
		Published:   !fm.Draft,
		ExternalURL: externalURL,
	}, nil
}

func slugFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(name, "index") {
		return filepath.Base(filepath.Dir(path))
	}
	return name
}

func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}
