package breakpoint

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// breakpointFile is the layout of a breakpoint configuration file:
//
//    breakpoints:
//      - name: tiny
//        media: "screen and (max-width: 320px)"
//        priority: 1100
//
type breakpointFile struct {
	Breakpoints []Breakpoint `yaml:"breakpoints"`
}

// LoadYAML reads breakpoint definitions from a YAML document.
// Every breakpoint needs a name; an omitted priority defaults to 0.
func LoadYAML(r io.Reader) ([]Breakpoint, error) {
	var f breakpointFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot decode breakpoints: %w", err)
	}
	for i, bp := range f.Breakpoints {
		if bp.Name == FallbackName {
			return nil, fmt.Errorf("%w: breakpoint #%d has no name", ErrInvalidBreakpoint, i)
		}
		if _, err := ParseMedia(bp.Media); err != nil {
			return nil, fmt.Errorf("%w: breakpoint %s: %v", ErrInvalidBreakpoint, bp.Name, err)
		}
	}
	tracer().Infof("breakpoint: loaded %d breakpoint definitions", len(f.Breakpoints))
	return f.Breakpoints, nil
}

// LoadYAMLFile reads breakpoint definitions from a YAML file.
func LoadYAMLFile(path string) ([]Breakpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}
