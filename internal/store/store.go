// Package store provides an in-memory catalogue of the projects in a slideshow.
// It keeps the externally supplied order, which defines circular adjacency,
// and indexes projects by their stable ID.
package store

import (
	"errors"
	"fmt"

	"github.com/robby/folio/internal/domain"
)

var (
	// ErrTooFewProjects indicates the catalogue cannot fill the three visible roles.
	ErrTooFewProjects = errors.New("too few projects")
	// ErrDuplicateID indicates two projects share an ID.
	ErrDuplicateID = errors.New("duplicate project ID")
	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")
)

// Store manages the ordered, immutable-per-session project list.
type Store struct {
	projects []domain.Project
	byID     map[string]int // ID -> position in projects
}

// New creates a new empty Store instance.
func New() *Store {
	return &Store{
		byID: make(map[string]int),
	}
}

// SetProjects replaces the catalogue. The list must hold at least
// domain.MinProjects entries with unique, non-empty IDs; on error the
// previous catalogue is kept.
func (s *Store) SetProjects(projects []domain.Project) error {
	if len(projects) < domain.MinProjects {
		return fmt.Errorf("%w: need %d, got %d", ErrTooFewProjects, domain.MinProjects, len(projects))
	}

	byID := make(map[string]int, len(projects))
	for i, p := range projects {
		if _, exists := byID[p.ID]; exists || p.ID == "" {
			return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		byID[p.ID] = i
	}

	s.projects = make([]domain.Project, len(projects))
	copy(s.projects, projects)
	s.byID = byID
	return nil
}

// Len returns the number of projects.
func (s *Store) Len() int {
	return len(s.projects)
}

// All returns a copy of the projects in slideshow order.
func (s *Store) All() []domain.Project {
	result := make([]domain.Project, len(s.projects))
	copy(result, s.projects)
	return result
}

// At returns the project at position i.
func (s *Store) At(i int) (domain.Project, error) {
	if i < 0 || i >= len(s.projects) {
		return domain.Project{}, fmt.Errorf("%w: index %d", ErrProjectNotFound, i)
	}
	return s.projects[i], nil
}

// Get retrieves a project by ID, returning ErrProjectNotFound if not found.
func (s *Store) Get(id string) (domain.Project, error) {
	i, exists := s.byID[id]
	if !exists {
		return domain.Project{}, ErrProjectNotFound
	}
	return s.projects[i], nil
}

// IndexOf returns the slideshow position of the project with id.
func (s *Store) IndexOf(id string) (int, error) {
	i, exists := s.byID[id]
	if !exists {
		return -1, ErrProjectNotFound
	}
	return i, nil
}

// Reset completely resets the store to initial state.
func (s *Store) Reset() {
	s.projects = nil
	s.byID = make(map[string]int)
}
