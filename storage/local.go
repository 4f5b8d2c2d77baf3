package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	nonAlphaNumeric = regexp.MustCompile(`[^a-zA-Z0-9_\-\.]`)
	multipleSpaces  = regexp.MustCompile(`\s+`)
)

const maxStemLength = 150

// Local stores uploaded audio as flat files in one directory. Stored names
// are relative to that directory.
type Local struct {
	dir string
	now func() time.Time
}

// NewLocal creates dir if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Local{dir: dir, now: time.Now}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

// Path joins a stored name onto the upload directory.
func (l *Local) Path(name string) string {
	return filepath.Join(l.dir, filepath.Base(name))
}

// SanitizeFilename reduces a client-supplied name to a safe base name. The
// extension is kept and lowercased.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	stem = multipleSpaces.ReplaceAllString(strings.TrimSpace(stem), "_")
	stem = nonAlphaNumeric.ReplaceAllString(stem, "")
	stem = strings.Trim(stem, "._")
	if len(stem) > maxStemLength {
		stem = stem[:maxStemLength]
	}
	if stem == "" {
		stem = "fallback_filename"
	}
	ext = nonAlphaNumeric.ReplaceAllString(ext, "")
	return stem + ext
}

// Save writes r under the sanitized name. On a clash the name gains a
// _<unix seconds> suffix, and a counter after that if needed. It returns the
// stored name.
func (l *Local) Save(name string, r io.Reader) (string, error) {
	clean := SanitizeFilename(name)
	ext := filepath.Ext(clean)
	stem := strings.TrimSuffix(clean, ext)

	candidate := clean
	for attempt := 0; ; attempt++ {
		f, err := os.OpenFile(filepath.Join(l.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			if _, err := io.Copy(f, r); err != nil {
				f.Close()
				os.Remove(f.Name())
				return "", fmt.Errorf("write %s: %w", candidate, err)
			}
			if err := f.Close(); err != nil {
				os.Remove(f.Name())
				return "", fmt.Errorf("close %s: %w", candidate, err)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}
		if attempt >= 100 {
			return "", fmt.Errorf("no free name for %s", clean)
		}
		suffix := fmt.Sprintf("_%d", l.now().Unix())
		if attempt > 0 {
			suffix = fmt.Sprintf("%s_%d", suffix, attempt)
		}
		candidate = stem + suffix + ext
	}
}

// Exists reports whether a stored name refers to a regular file.
func (l *Local) Exists(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(l.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes a stored file. A missing file is not an error.
func (l *Local) Remove(name string) error {
	err := os.Remove(l.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the regular files in the directory in lexical order.
func (l *Local) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
