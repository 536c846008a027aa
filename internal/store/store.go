// Package store keeps generated scripts in a single directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/utils"
)

type Store struct {
	log logr.Logger
	opt *Options
}

func New(log logr.Logger, dir string) *Store {
	return NewWithOptions(log, WithDir(dir))
}

func NewWithOptions(log logr.Logger, opts ...FnOptions) *Store {
	opt := defaultOptions()
	for _, o := range opts {
		o(opt)
	}

	return &Store{
		log: log,
		opt: opt,
	}
}

func (s *Store) Dir() string {
	return s.opt.Dir
}

// Save writes content under a timestamped name. Two saves within the
// same second share a name and the second one overwrites the first.
func (s *Store) Save(content string) (model.GeneratedScript, error) {
	if err := s.ensureDir(); err != nil {
		return model.GeneratedScript{}, err
	}

	createdAt := s.opt.Now()
	name := s.opt.GenerateFileName()
	path := filepath.Join(s.opt.Dir, name)

	if utils.FileExists(path) {
		s.log.Warnf("⚠️  Script %s already exists and will be overwritten", name)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return model.GeneratedScript{}, fmt.Errorf("%w: write script %s: %w", model.ErrIO, path, err)
	}

	s.log.Infof("💾 Script saved: %s", path)

	return model.GeneratedScript{
		Name:      name,
		Path:      path,
		Content:   content,
		CreatedAt: createdAt,
	}, nil
}

// List returns the stored scripts ordered by file name.
func (s *Store) List() ([]model.ScriptEntry, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.opt.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read scripts dir: %w", model.ErrIO, err)
	}

	files := make([]model.ScriptEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !s.isScript(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			s.log.Debugf("Skipping %s: %v", entry.Name(), err)
			continue
		}

		files = append(files, model.ScriptEntry{
			Name:     entry.Name(),
			Path:     filepath.Join(s.opt.Dir, entry.Name()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Modified: utils.FormatTime(info.ModTime()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

func (s *Store) Read(name string) (string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: script %s", model.ErrNotFound, name)
		}
		return "", fmt.Errorf("%w: read script %s: %w", model.ErrIO, path, err)
	}

	return string(data), nil
}

func (s *Store) Delete(name string) error {
	path, err := s.Resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: script %s", model.ErrNotFound, name)
		}
		return fmt.Errorf("%w: delete script %s: %w", model.ErrIO, path, err)
	}

	s.log.Infof("🗑️  Script deleted: %s", path)
	return nil
}

// Resolve maps a script reference to its path inside the store.
// The extension may be omitted. A full path is accepted only when it
// points into the store directory.
func (s *Store) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: script name is required", model.ErrValidation)
	}

	if filepath.IsAbs(name) && samePath(filepath.Dir(name), s.opt.Dir) {
		name = filepath.Base(name)
	}

	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid script name %q", model.ErrValidation, name)
	}

	if !s.isScript(name) {
		name += s.opt.Extension
	}

	path := filepath.Join(s.opt.Dir, name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: script %s", model.ErrNotFound, name)
		}
		return "", fmt.Errorf("%w: stat script %s: %w", model.ErrIO, path, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: script %s", model.ErrNotFound, name)
	}

	return path, nil
}

func (s *Store) isScript(name string) bool {
	return strings.EqualFold(filepath.Ext(name), s.opt.Extension)
}

func (s *Store) ensureDir() error {
	if err := utils.EnsureDir(s.opt.Dir); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	return nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
