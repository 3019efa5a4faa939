package model

import (
	"fmt"
	"sort"

	"github.com/provkit/provkit/attr"
)

// Sample is one biological sample: a named collection of files and the
// programs that were run on them.
type Sample struct {
	// Name is the sample identifier, unique within its project.
	Name string

	// Files maps a file key (conventionally the file name) to the file.
	Files map[string]*File

	// Programs maps a program key (conventionally the program name) to
	// the program.
	Programs map[string]*Program
}

// NewSample creates an empty sample with the given name.
func NewSample(name string) *Sample {
	return &Sample{
		Name:     name,
		Files:    make(map[string]*File),
		Programs: make(map[string]*Program),
	}
}

// AddFile registers a file under its name and returns the sample for
// chaining.
func (s *Sample) AddFile(f *File) *Sample {
	if s.Files == nil {
		s.Files = make(map[string]*File)
	}
	s.Files[f.Name] = f
	return s
}

// AddProgram registers a program under its name and returns the sample for
// chaining.
func (s *Sample) AddProgram(p *Program) *Sample {
	if s.Programs == nil {
		s.Programs = make(map[string]*Program)
	}
	s.Programs[p.Name] = p
	return s
}

// FileKeys returns the file map keys in sorted order.
func (s *Sample) FileKeys() []string {
	keys := make([]string, 0, len(s.Files))
	for k := range s.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ProgramKeys returns the program map keys in sorted order.
func (s *Sample) ProgramKeys() []string {
	keys := make([]string, 0, len(s.Programs))
	for k := range s.Programs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the sample has a name and non-nil file and program
// maps.
func (s *Sample) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("model: sample with empty name: %w", ErrInvalidProject)
	}
	if s.Files == nil {
		return fmt.Errorf("model: sample %q has no file map: %w", s.Name, ErrInvalidProject)
	}
	if s.Programs == nil {
		return fmt.Errorf("model: sample %q has no program map: %w", s.Name, ErrInvalidProject)
	}
	return nil
}

// File is a single file belonging to a sample, with its location, an
// existence flag, and arbitrary metadata.
type File struct {
	// Name is the file identifier, unique within its sample.
	Name string

	// Path is the file's location on disk.
	Path string

	// Exists records whether the file was present when the model was
	// populated.
	Exists bool

	// Metadata holds arbitrary file-level attributes (format, checksum,
	// coverage, and so on).
	Metadata *attr.Map
}

// NewFile creates a file record.
func NewFile(name, path string, exists bool) *File {
	return &File{
		Name:     name,
		Path:     path,
		Exists:   exists,
		Metadata: attr.NewMap(),
	}
}

// SetMeta stores a metadata value and returns the file for chaining.
func (f *File) SetMeta(key string, v attr.Value) *File {
	if f.Metadata == nil {
		f.Metadata = attr.NewMap()
	}
	f.Metadata.Set(key, v)
	return f
}

// AttributeMap builds the attribute bag encoded onto the file entity: the
// fixed fields (name, path, exists) followed by the metadata in insertion
// order.
func (f *File) AttributeMap() *attr.Map {
	m := attr.NewMap().
		Set("name", attr.String(f.Name)).
		Set("path", attr.String(f.Path)).
		Set("exists", attr.Bool(f.Exists))
	for _, key := range f.Metadata.Keys() {
		v, _ := f.Metadata.Get(key)
		m.Set(key, v)
	}
	return m
}
