package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

const manifestName = "norem.toml"

// Manifest is a project description as encoded in norem.toml:
//
//	[project]
//	name = "demo"
//	entry = "main.nrm"
//
//	[run]
//	trace = true
type Manifest struct {
	Project struct {
		Name  string `toml:"name"`
		Entry string `toml:"entry"`
	} `toml:"project"`
	Run struct {
		Trace bool `toml:"trace"`
	} `toml:"run"`
}

// LoadManifest reads and decodes a manifest file. The entry field is
// mandatory; name defaults to the entry path.
func LoadManifest(path string) (*Manifest, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	man := &Manifest{}
	if err := toml.Unmarshal(buff, man); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", path, err)
	}
	if man.Project.Entry == "" {
		return nil, fmt.Errorf("%s: [project] entry is required", path)
	}
	if man.Project.Name == "" {
		man.Project.Name = man.Project.Entry
	}
	return man, nil
}
