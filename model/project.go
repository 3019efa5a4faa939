package model

import (
	"fmt"
	"sort"

	"github.com/provkit/provkit/attr"
)

// EnvKey identifies an environment registration on a project: the user the
// project was processed as, and the environment snapshot's signature.
type EnvKey struct {
	User      string
	Signature string
}

// Project is the root of the domain model: a tagged analysis owning
// samples and referencing the environments and users it was processed
// under.
type Project struct {
	// Tag is the project identifier.
	Tag string

	// Samples maps sample name to sample.
	Samples map[string]*Sample

	// Envs maps (user, environment signature) pairs to environment
	// snapshots.
	Envs map[EnvKey]*Environment

	// Metadata holds arbitrary project-level attributes. Large backing
	// collections do not belong here; the assembler denylists them when
	// encoding.
	Metadata *attr.Map
}

// NewProject creates an empty project with the given tag.
func NewProject(tag string) *Project {
	return &Project{
		Tag:      tag,
		Samples:  make(map[string]*Sample),
		Envs:     make(map[EnvKey]*Environment),
		Metadata: attr.NewMap(),
	}
}

// AddSample registers a sample under its name and returns the project for
// chaining. A sample with the same name is replaced.
func (p *Project) AddSample(s *Sample) *Project {
	if p.Samples == nil {
		p.Samples = make(map[string]*Sample)
	}
	p.Samples[s.Name] = s
	return p
}

// AddEnvironment registers an environment snapshot for a user, keyed by
// the snapshot's signature, and returns the project for chaining.
func (p *Project) AddEnvironment(user string, env *Environment) *Project {
	if p.Envs == nil {
		p.Envs = make(map[EnvKey]*Environment)
	}
	p.Envs[EnvKey{User: user, Signature: env.Signature}] = env
	return p
}

// Len returns the number of samples.
func (p *Project) Len() int {
	return len(p.Samples)
}

// SampleNames returns the sample names in sorted order. The assembler
// traverses samples in this order so output is reproducible.
func (p *Project) SampleNames() []string {
	names := make([]string, 0, len(p.Samples))
	for name := range p.Samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnvKeys returns the environment keys sorted by user, then signature.
func (p *Project) EnvKeys() []EnvKey {
	keys := make([]EnvKey, 0, len(p.Envs))
	for k := range p.Envs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].User != keys[j].User {
			return keys[i].User < keys[j].User
		}
		return keys[i].Signature < keys[j].Signature
	})
	return keys
}

// Validate checks that the project satisfies the shape the assembler
// requires: a non-empty tag, a sample map, and an environment map, with
// every sample well-formed. An empty project (zero samples) is valid.
func (p *Project) Validate() error {
	if p == nil {
		return fmt.Errorf("model: nil project: %w", ErrInvalidProject)
	}
	if p.Tag == "" {
		return fmt.Errorf("model: empty project tag: %w", ErrInvalidProject)
	}
	if p.Samples == nil {
		return fmt.Errorf("model: project %q has no sample map: %w", p.Tag, ErrInvalidProject)
	}
	if p.Envs == nil {
		return fmt.Errorf("model: project %q has no environment map: %w", p.Tag, ErrInvalidProject)
	}
	for name, s := range p.Samples {
		if s == nil {
			return fmt.Errorf("model: project %q sample %q is nil: %w", p.Tag, name, ErrInvalidProject)
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Name != name {
			return fmt.Errorf("model: project %q sample keyed %q is named %q: %w",
				p.Tag, name, s.Name, ErrInvalidProject)
		}
	}
	for key, env := range p.Envs {
		if env == nil {
			return fmt.Errorf("model: project %q environment %q/%q is nil: %w",
				p.Tag, key.User, key.Signature, ErrInvalidProject)
		}
	}
	return nil
}

// AttributeMap builds the attribute bag encoded onto the project entity:
// the tag followed by the project metadata in insertion order.
func (p *Project) AttributeMap() *attr.Map {
	m := attr.NewMap().Set("tag", attr.String(p.Tag))
	for _, key := range p.Metadata.Keys() {
		v, _ := p.Metadata.Get(key)
		m.Set(key, v)
	}
	return m
}
