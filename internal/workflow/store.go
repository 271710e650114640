package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ProjectFile is the filename of a project's record.
const ProjectFile = "project.json"

// ErrNotFound is returned when a project or artifact does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for projects.
type Store interface {
	Create(p *Project) error
	Load(id string) (*Project, error)
	LoadActive() (*Project, error)
	Save(p *Project) error
	List() ([]Project, error)
	SaveArtifact(id string, phase Phase, content string) error
	ReadArtifact(id string, phase Phase) (string, error)
}

// FileStore keeps one directory per project under a root directory:
//
//	<root>/<id>/project.json
//	<root>/<id>/<phase>.md
type FileStore struct {
	root string
}

// NewFileStore creates a filesystem-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Root returns the store's root directory.
func (fs *FileStore) Root() string { return fs.root }

// ProjectPath returns the directory of a project.
func (fs *FileStore) ProjectPath(id string) string {
	return filepath.Join(fs.root, id)
}

// ArtifactPath returns the markdown file holding a phase's artifact.
func (fs *FileStore) ArtifactPath(id string, phase Phase) string {
	return filepath.Join(fs.ProjectPath(id), string(phase)+".md")
}

// Create persists a new project. If the slug is taken, a numeric suffix
// (-2, -3, ...) is appended and p.ID is updated.
func (fs *FileStore) Create(p *Project) error {
	if err := os.MkdirAll(fs.root, 0o755); err != nil {
		return fmt.Errorf("creating workflow directory: %w", err)
	}

	base := p.ID
	dir := fs.ProjectPath(p.ID)
	for suffix := 2; ; suffix++ {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			break
		}
		p.ID = fmt.Sprintf("%s-%d", base, suffix)
		dir = fs.ProjectPath(p.ID)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	return fs.write(p)
}

// Load reads a project by ID.
func (fs *FileStore) Load(id string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(fs.ProjectPath(id), ProjectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project %q %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading project: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s for %q: %w", ProjectFile, id, err)
	}
	return &p, nil
}

// LoadActive returns the most recently updated active project.
// Returns nil (not an error) if none exists.
func (fs *FileStore) LoadActive() (*Project, error) {
	projects, err := fs.List()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Status == StatusActive {
			return &projects[i], nil
		}
	}
	return nil, nil
}

// Save updates an existing project.
func (fs *FileStore) Save(p *Project) error {
	p.UpdatedAt = timestamp()
	return fs.write(p)
}

// List returns all readable projects, most recently updated first.
func (fs *FileStore) List() ([]Project, error) {
	entries, err := os.ReadDir(fs.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading workflow directory: %w", err)
	}

	var result []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := fs.Load(entry.Name())
		if err != nil {
			continue // skip unreadable projects
		}
		result = append(result, *p)
	}

	// RFC3339 UTC timestamps sort lexically.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].UpdatedAt != result[j].UpdatedAt {
			return result[i].UpdatedAt > result[j].UpdatedAt
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// SaveArtifact writes the pasted LLM output for a phase.
func (fs *FileStore) SaveArtifact(id string, phase Phase, content string) error {
	if err := ValidatePhase(phase); err != nil {
		return err
	}
	dir := fs.ProjectPath(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("project %q %w", id, ErrNotFound)
	}
	if err := os.WriteFile(fs.ArtifactPath(id, phase), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s artifact: %w", phase, err)
	}
	return nil
}

// ReadArtifact returns the saved output for a phase.
func (fs *FileStore) ReadArtifact(id string, phase Phase) (string, error) {
	if err := ValidatePhase(phase); err != nil {
		return "", err
	}
	data, err := os.ReadFile(fs.ArtifactPath(id, phase))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s artifact for %q %w", phase, id, ErrNotFound)
		}
		return "", fmt.Errorf("reading %s artifact: %w", phase, err)
	}
	return string(data), nil
}

func (fs *FileStore) write(p *Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project: %w", err)
	}

	dir := fs.ProjectPath(p.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ProjectFile), data, 0o644)
}
