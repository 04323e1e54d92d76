package game

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var layoutResource []byte

type layoutFile struct {
	Cells []layoutCell `yaml:"cells"`
}

type layoutCell struct {
	Pos      string   `yaml:"pos"`
	Kind     string   `yaml:"kind"`
	Adjacent []string `yaml:"adjacent"`
}

var cellKinds = map[string]CellKind{
	"regular":      Regular,
	"camp":         Camp,
	"headquarters": Headquarters,
}

// LoadLayout reads a precomputed adjacency list. Every cell of the board must
// be listed exactly once and every edge must be listed from both ends.
func LoadLayout(r io.Reader) (*Layout, error) {
	var f layoutFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}

	l := newLayout()
	for _, cell := range f.Cells {
		p, err := ParsePosition(cell.Pos)
		if err != nil {
			return nil, fmt.Errorf("layout cell: %w", err)
		}
		if _, ok := l.adjacent[p]; ok {
			return nil, fmt.Errorf("layout cell %v listed twice", p)
		}
		kind, ok := cellKinds[cell.Kind]
		if !ok {
			return nil, fmt.Errorf("layout cell %v: unknown kind %q", p, cell.Kind)
		}
		l.kinds[p.Row][p.Col] = kind

		adj := make([]Position, 0, len(cell.Adjacent))
		for _, s := range cell.Adjacent {
			q, err := ParsePosition(s)
			if err != nil {
				return nil, fmt.Errorf("layout cell %v: %w", p, err)
			}
			adj = append(adj, q)
		}
		l.adjacent[p] = adj
	}

	if len(l.adjacent) != Width*Height {
		return nil, fmt.Errorf("layout lists %d cells, want %d", len(l.adjacent), Width*Height)
	}
	for p, adj := range l.adjacent {
		for _, q := range adj {
			if !slices.Contains(l.adjacent[q], p) {
				return nil, fmt.Errorf("layout edge %v-%v is one-way", p, q)
			}
		}
	}

	l.sortAdjacency()
	return l, nil
}

// ResourceLayout loads the embedded board graph.
func ResourceLayout() (*Layout, error) {
	return LoadLayout(bytes.NewReader(layoutResource))
}
