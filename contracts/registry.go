package contracts

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// Registry holds the artifacts available for deployment, by contract name
type Registry struct {
	artifacts map[string]*Artifact
}

func NewRegistry() *Registry {
	return &Registry{artifacts: make(map[string]*Artifact)}
}

// LoadRegistry reads <buildDir>/<name>.json for each of names
func LoadRegistry(buildDir string, names ...string) (*Registry, error) {
	r := NewRegistry()
	for _, name := range names {
		a, err := LoadArtifact(filepath.Join(buildDir, name+".json"))
		if err != nil {
			return nil, err
		}
		if a.Name == "" {
			a.Name = name
		}
		if a.Name != name {
			return nil, errors.Errorf("artifact %s.json holds contract %s", name, a.Name)
		}
		r.Add(a)
	}
	return r, nil
}

// Add registers a, replacing any artifact with the same name
func (r *Registry) Add(a *Artifact) {
	r.artifacts[a.Name] = a
}

// Get returns the artifact of contract name
func (r *Registry) Get(name string) (*Artifact, error) {
	a, ok := r.artifacts[name]
	if !ok {
		return nil, errors.Errorf("unknown contract %q", name)
	}
	return a, nil
}
