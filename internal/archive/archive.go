// Package archive is the filesystem-backed hierarchical case store:
// root/category/court/caseNumber, each case folder holding raw artifacts
// plus a sidecar record written once at creation.
//
// Concurrent writers to the same case folder are not coordinated. Writes
// come from a single operator session in practice; anyone extending this
// to multi-operator use must add locking.
package archive

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lexkit/case-cli/internal/assemble"
	"github.com/lexkit/case-cli/internal/extract"
)

// SidecarName is the metadata record written once at case creation.
const SidecarName = "case.yaml"

// Sidecar is the human-readable key-value record stored alongside a case
// folder's artifacts.
type Sidecar struct {
	ID         string    `yaml:"id"`
	Category   string    `yaml:"category"`
	Court      string    `yaml:"court"`
	CaseNumber string    `yaml:"case_number"`
	Parties    string    `yaml:"parties"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// Entry is one search hit: a case folder or an artifact file under the
// archive root.
type Entry struct {
	Path      string
	IsDir     bool
	FileCount int // artifact files directly inside, for directories
}

// Store is the archive rooted at a single directory.
type Store struct {
	root string
}

// NewStore opens (creating if needed) the archive root. A root that cannot
// be created is a terminal error; no operation proceeds without it.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, eris.New("archive: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, eris.Wrap(err, "archive: create root")
	}
	return &Store{root: root}, nil
}

// Root returns the archive root directory.
func (s *Store) Root() string { return s.root }

// sanitizeSegment keeps path segments filesystem-safe: letters, digits,
// spaces, dashes and underscores survive, everything else is dropped.
func sanitizeSegment(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r > 127: // keep non-ASCII letters (court names are Turkish)
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		}
	}
	out := strings.TrimSpace(sb.String())
	// "." and ".." would resolve outside the archive hierarchy when joined.
	if out == "." || out == ".." {
		return ""
	}
	return out
}

// CreateCase creates category/court/caseNumber under the root and writes
// the sidecar record. It fails if the folder already exists and is
// non-empty, to avoid silently merging unrelated cases.
func (s *Store) CreateCase(category, court, caseNumber, parties string) (string, error) {
	court = sanitizeSegment(court)
	caseNumber = sanitizeSegment(caseNumber)
	if court == "" || caseNumber == "" {
		return "", eris.New("archive: court and case number are required")
	}
	category = sanitizeSegment(category)
	if category == "" {
		category = "Genel"
	}

	casePath := filepath.Join(s.root, category, court, caseNumber)

	if entries, err := os.ReadDir(casePath); err == nil && len(entries) > 0 {
		return "", eris.Errorf("archive: case folder %s already exists and is not empty", casePath)
	}
	if err := os.MkdirAll(casePath, 0o755); err != nil {
		return "", eris.Wrap(err, "archive: create case folder")
	}

	sidecar := Sidecar{
		ID:         uuid.NewString(),
		Category:   category,
		Court:      court,
		CaseNumber: caseNumber,
		Parties:    parties,
		CreatedAt:  time.Now().UTC(),
	}
	data, err := yaml.Marshal(sidecar)
	if err != nil {
		return "", eris.Wrap(err, "archive: marshal sidecar")
	}
	if err := os.WriteFile(filepath.Join(casePath, SidecarName), data, 0o644); err != nil {
		return "", eris.Wrap(err, "archive: write sidecar")
	}

	zap.L().Info("case folder created",
		zap.String("path", casePath),
		zap.String("case_id", sidecar.ID),
	)

	return casePath, nil
}

// ReadSidecar loads the sidecar record of a case folder.
func (s *Store) ReadSidecar(casePath string) (*Sidecar, error) {
	data, err := os.ReadFile(filepath.Join(casePath, SidecarName))
	if err != nil {
		return nil, eris.Wrap(err, "archive: read sidecar")
	}
	var sc Sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, eris.Wrap(err, "archive: parse sidecar")
	}
	return &sc, nil
}

// AddArtifacts copies raw artifact bytes into an existing case folder.
// No extraction happens at write time; extraction is lazy, on OpenCase.
func (s *Store) AddArtifacts(casePath string, files []extract.File) error {
	info, err := os.Stat(casePath)
	if err != nil || !info.IsDir() {
		return eris.Errorf("archive: case folder %s does not exist", casePath)
	}

	for _, f := range files {
		name := sanitizeSegment(filepath.Base(f.Name))
		if name == "" {
			return eris.Errorf("archive: unusable artifact name %q", f.Name)
		}
		dest := filepath.Join(casePath, name)
		if err := os.WriteFile(dest, f.Data, 0o644); err != nil {
			return eris.Wrapf(err, "archive: write artifact %s", name)
		}
	}

	zap.L().Info("artifacts added",
		zap.String("path", casePath),
		zap.Int("count", len(files)),
	)

	return nil
}

// Search performs a case-insensitive substring scan over directory and
// file names under the root. A simple scan is a deliberate choice: the
// corpus is case-file scale, not web scale, so no index is kept.
func (s *Store) Search(term string) ([]Entry, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	results := []Entry{}
	if term == "" {
		return results, nil
	}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if strings.Contains(strings.ToLower(rel), term) {
				results = append(results, Entry{
					Path:      path,
					IsDir:     true,
					FileCount: countFiles(path),
				})
			}
			return nil
		}

		if strings.Contains(strings.ToLower(d.Name()), term) {
			results = append(results, Entry{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "archive: search walk")
	}

	return results, nil
}

func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}

// OpenCase lists the files directly inside a case folder (non-recursive),
// extracts each through the registry, and returns one assembled aggregate
// context plus a map of per-file failures. The aggregate is a derived,
// disposable value: it is recomputed on every call and never persisted, so
// it can never go stale against the folder's file set.
func (s *Store) OpenCase(ctx context.Context, casePath string, reg *extract.Registry, budgetChars, workers int) (string, map[string]string, error) {
	entries, err := os.ReadDir(casePath)
	if err != nil {
		return "", nil, eris.Wrapf(err, "archive: open case %s", casePath)
	}

	var files []extract.File
	for _, e := range entries {
		if e.IsDir() || e.Name() == SidecarName {
			continue
		}
		data, err := os.ReadFile(filepath.Join(casePath, e.Name()))
		if err != nil {
			return "", nil, eris.Wrapf(err, "archive: read artifact %s", e.Name())
		}
		files = append(files, extract.File{Name: e.Name(), Data: data})
	}

	results := reg.Batch(ctx, files, workers)

	perFileErrors := map[string]string{}
	for _, res := range results {
		if !res.OK {
			perFileErrors[res.SourceName] = res.FailureReason
		}
	}

	return assemble.Assemble(results, budgetChars), perFileErrors, nil
}
