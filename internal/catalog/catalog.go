// Package catalog obtains the ordered project list shown by the slideshow.
// It implements a simple interface with multiple sources following the
// "deep modules" principle - simple interface, fallback logic hidden.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/robby/folio/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file looked up in the working directory when no
// path is configured.
const DefaultFile = "projects.yaml"

var (
	// ErrNoSource indicates no source produced a project list.
	ErrNoSource = errors.New("no project source available")
	// ErrEmpty indicates a source produced an empty list.
	ErrEmpty = errors.New("project list is empty")
)

// Source defines the interface for obtaining the project list.
// Implementations may read files, embedded data, etc.
type Source interface {
	Projects() ([]domain.Project, error)
	Name() string
}

// fileDocument is the on-disk YAML layout of a project file.
type fileDocument struct {
	BaseURL  string        `yaml:"base_url"`
	Projects []fileProject `yaml:"projects"`
}

type fileProject struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Image       string `yaml:"image"`
	Background  string `yaml:"background"`
}

// FileSource reads projects from a YAML file.
type FileSource struct {
	Path string
	// Optional reports whether a missing file should defer to the next source.
	Optional bool
}

// Name identifies the source in errors and logs.
func (f *FileSource) Name() string {
	return "file " + f.Path
}

// Projects parses the file. Relative image and background locations are
// resolved against base_url when one is set.
func (f *FileSource) Projects() ([]domain.Project, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse project file %s: %w", f.Path, err)
	}

	projects := make([]domain.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		projects = append(projects, domain.Project{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Date:          p.Date,
			ImageURL:      ResolveURL(doc.BaseURL, p.Image),
			BackgroundURL: ResolveURL(doc.BaseURL, p.Background),
		})
	}
	return projects, nil
}

// DemoSource serves the built-in portfolio.
type DemoSource struct {
	BaseURL string
}

// Name identifies the source in errors and logs.
func (d *DemoSource) Name() string {
	return "demo"
}

// Projects returns the five demo projects.
func (d *DemoSource) Projects() ([]domain.Project, error) {
	base := d.BaseURL
	if base == "" {
		base = DemoBaseURL
	}
	projects := make([]domain.Project, len(demoProjects))
	for i, p := range demoProjects {
		p.ImageURL = ResolveURL(base, p.ImageURL)
		p.BackgroundURL = ResolveURL(base, p.BackgroundURL)
		projects[i] = p
	}
	return projects, nil
}

// Sources returns the lookup chain for a configured path:
// 1. An explicit path is the only source (a missing file is an error)
// 2. Otherwise projects.yaml in the working directory, if present
// 3. Otherwise the built-in demo portfolio
func Sources(path string) []Source {
	if path != "" {
		return []Source{&FileSource{Path: path}}
	}
	return []Source{
		&FileSource{Path: DefaultFile, Optional: true},
		&DemoSource{},
	}
}

// Load obtains projects from the first source that succeeds, then normalizes
// them: names are trimmed and missing IDs get a generated UUID.
//
// This is the main entry point for project retrieval in the application.
func Load(sources ...Source) ([]domain.Project, error) {
	var errs []error
	for _, src := range sources {
		projects, err := src.Projects()
		if err != nil {
			if fs, ok := src.(*FileSource); ok && fs.Optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if len(projects) == 0 {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), ErrEmpty))
			continue
		}
		return normalize(projects), nil
	}

	if len(errs) == 0 {
		return nil, ErrNoSource
	}
	return nil, errors.Join(errs...)
}

func normalize(projects []domain.Project) []domain.Project {
	out := make([]domain.Project, len(projects))
	for i, p := range projects {
		p.Name = strings.TrimSpace(p.Name)
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		out[i] = p
	}
	return out
}

// ResolveURL joins a relative slug onto base. Absolute URLs and an empty base
// leave the slug untouched.
func ResolveURL(base, slug string) string {
	if base == "" || slug == "" || strings.Contains(slug, "://") {
		return slug
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(slug, "/")
}
