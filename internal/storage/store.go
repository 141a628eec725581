package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/scene"
)

var ErrNotFound = errors.New("storage: export not found")

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

// Metadata is written as metadata.json next to the artefacts of an export.
// Seed and Config are enough to regenerate the artwork.
type Metadata struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Seed      string         `json:"seed"`
	Timestamp time.Time      `json:"timestamp"`
	Config    *config.Config `json:"config"`
	Summary   scene.Summary  `json:"summary"`
	Artefacts []string       `json:"artefacts"`
}

// Session is an export directory being filled. Metadata is only written on
// Commit, so List never sees a half-written export.
type Session struct {
	dir  string
	meta Metadata
}

func (s *Store) Begin(kind string, sc *scene.Scene) (*Session, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	now := time.Now()
	base := fmt.Sprintf("%s_%s_%d", kind, slug(sc.Config.Seed), now.UnixNano())
	id, dir := base, filepath.Join(s.baseDir, base)
	// concurrent sessions for one seed can share a timestamp
	for n := 1; ; n++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return nil, err
		}
		id = fmt.Sprintf("%s-%d", base, n)
		dir = filepath.Join(s.baseDir, id)
	}
	return &Session{
		dir: dir,
		meta: Metadata{
			ID:        id,
			Kind:      kind,
			Seed:      sc.Config.Seed,
			Timestamp: now,
			Config:    sc.Config,
			Summary:   sc.Summary(),
		},
	}, nil
}

func (x *Session) ID() string {
	return x.meta.ID
}

func (x *Session) Dir() string {
	return x.dir
}

// Create opens a new artefact file inside the export directory.
func (x *Session) Create(name string) (*os.File, error) {
	if name != filepath.Base(name) || name == metadataFile || name == configFile {
		return nil, fmt.Errorf("storage: invalid artefact name %q", name)
	}
	f, err := os.Create(filepath.Join(x.dir, name))
	if err != nil {
		return nil, err
	}
	x.meta.Artefacts = append(x.meta.Artefacts, name)
	return f, nil
}

func (x *Session) Commit() error {
	if err := config.Save(filepath.Join(x.dir, configFile), x.meta.Config); err != nil {
		return err
	}
	data, err := json.MarshalIndent(x.meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(x.dir, metadataFile), data, 0644)
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	if id == "" || id != filepath.Base(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &meta, nil
}

// LoadConfig reads back the config an export was produced with.
func (s *Store) LoadConfig(id string) (*config.Config, error) {
	if _, err := s.Load(id); err != nil {
		return nil, err
	}
	return config.Load(filepath.Join(s.baseDir, id, configFile))
}

func (s *Store) Path(id, artefact string) string {
	return filepath.Join(s.baseDir, id, artefact)
}

func slug(seed string) string {
	var b strings.Builder
	for _, r := range seed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
		if b.Len() >= 24 {
			break
		}
	}
	if b.Len() == 0 {
		return "seed"
	}
	return b.String()
}
