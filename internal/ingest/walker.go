package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"hotel_reviews/internal/adapters/observability"
	"hotel_reviews/internal/domain"
)

// Ext is the suffix of ingestible files. The match is case-sensitive.
const Ext = ".json"

var errNotIngestible = errors.New("not a directory or " + Ext + " file")

// Walk enumerates ingestible files under a root, depth-first, using an
// explicit stack. It is consumed as it goes; start a new Walk to traverse
// again.
type Walk struct {
	log   zerolog.Logger
	dirs  []string // stack of directories still to list
	files []string // files found in the last listed directory
}

// NewWalk checks root before anything is yielded: it must be a readable
// directory or a readable file ending in Ext. Anything else is a
// KindInvalidPath error.
func NewWalk(root string, log zerolog.Logger) (*Walk, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, domain.PathErr(domain.KindInvalidPath, root, err)
	}
	if !fi.IsDir() && !ingestible(filepath.Base(root)) {
		return nil, domain.PathErr(domain.KindInvalidPath, root, errNotIngestible)
	}
	f, err := os.Open(root)
	if err != nil {
		return nil, domain.PathErr(domain.KindInvalidPath, root, err)
	}
	_ = f.Close()

	w := &Walk{log: log}
	if fi.IsDir() {
		w.dirs = []string{root}
	} else {
		w.files = []string{root}
	}
	return w, nil
}

// Next returns the next ingestible path, or false once the tree is exhausted.
func (w *Walk) Next() (string, bool) {
	for len(w.files) == 0 {
		if len(w.dirs) == 0 {
			return "", false
		}
		dir := w.dirs[len(w.dirs)-1]
		w.dirs = w.dirs[:len(w.dirs)-1]
		w.list(dir)
	}
	p := w.files[0]
	w.files = w.files[1:]
	return p, true
}

func (w *Walk) list(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		werr := domain.PathErr(domain.KindFileIO, dir, err)
		w.log.Warn().Err(werr).Str("path", dir).Str("kind", string(werr.Kind)).Msg("skipping unreadable directory")
		observability.ObserveIngestError(string(werr.Kind))
		return
	}
	var subdirs []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			subdirs = append(subdirs, p)
		case ingestible(e.Name()):
			w.files = append(w.files, p)
		}
	}
	// reversed so the first subdirectory is listed next
	for i := len(subdirs) - 1; i >= 0; i-- {
		w.dirs = append(w.dirs, subdirs[i])
	}
}

func ingestible(name string) bool { return strings.HasSuffix(name, Ext) }
