package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

const DefaultExtension = ".json"

var (
	errNotArray     = errors.New("expected a JSON array of records")
	errTrailingData = errors.New("unexpected data after the record array")
)

// Loader reads play events from every export file in a directory.
type Loader struct {
	Dir       string
	Extension string

	// OnFile, if set, is called after each file has been fully read.
	OnFile func(path string, events int)
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, Extension: DefaultExtension}
}

// Check verifies that the input directory exists.
func (l *Loader) Check() error {
	info, err := os.Stat(l.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, l.Dir)
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", l.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, l.Dir)
	}
	return nil
}

// Files lists the export files in the directory, sorted by name.
func (l *Loader) Files() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, l.Dir)
		}
		return nil, fmt.Errorf("reading %s: %w", l.Dir, err)
	}

	ext := l.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(l.Dir, entry.Name()))
	}
	return files, nil
}

// Events streams normalized play events. Iteration stops at the first error,
// which is yielded with a zero PlayEvent.
func (l *Loader) Events() iter.Seq2[PlayEvent, error] {
	return func(yield func(PlayEvent, error) bool) {
		files, err := l.Files()
		if err != nil {
			yield(PlayEvent{}, err)
			return
		}
		for _, path := range files {
			if !l.readFile(path, yield) {
				return
			}
		}
	}
}

// Load reads every event into memory.
func (l *Loader) Load() ([]PlayEvent, error) {
	var events []PlayEvent
	for e, err := range l.Events() {
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// readFile returns false when iteration should stop, either because of an
// error or because the consumer stopped early.
func (l *Loader) readFile(path string, yield func(PlayEvent, error) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		yield(PlayEvent{}, fmt.Errorf("opening %s: %w", path, err))
		return false
	}
	defer f.Close()

	fail := func(err error) bool {
		yield(PlayEvent{}, &ParseError{File: path, Err: err})
		return false
	}

	dec := json.NewDecoder(bufio.NewReader(f))
	tok, err := dec.Token()
	if err != nil {
		return fail(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fail(errNotArray)
	}

	count := 0
	for dec.More() {
		var r record
		if err := dec.Decode(&r); err != nil {
			return fail(err)
		}
		count++
		if !yield(normalize(r), nil) {
			return false
		}
	}

	// Closing bracket, then nothing else.
	if _, err := dec.Token(); err != nil {
		return fail(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return fail(err)
	}

	if l.OnFile != nil {
		l.OnFile(path, count)
	}
	return true
}
