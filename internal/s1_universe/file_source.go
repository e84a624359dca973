package s1_universe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/momentum-screener/internal/contracts"
)

// FileSource reads the universe from a YAML file
type FileSource struct {
	path string
}

// NewFileSource creates a YAML-backed universe source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// universeFile is the on-disk layout
type universeFile struct {
	Indices []indexEntry `yaml:"indices"`
}

type indexEntry struct {
	Name        string            `yaml:"name"`
	Instruments []instrumentEntry `yaml:"instruments"`
}

// instrumentEntry has either a ticker or a list of listing symbols
type instrumentEntry struct {
	Name    string        `yaml:"name"`
	Ticker  string        `yaml:"ticker"`
	Symbols []SymbolEntry `yaml:"symbols"`
}

// SymbolEntry is one listing of an instrument
type SymbolEntry struct {
	Yahoo    string `yaml:"yahoo"`
	Currency string `yaml:"currency"`
}

// Load implements contracts.UniverseSource
func (s *FileSource) Load(ctx context.Context) ([]contracts.Instrument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	return ParseUniverseYAML(data)
}

// ParseUniverseYAML decodes the universe layout, indices in file order
func ParseUniverseYAML(data []byte) ([]contracts.Instrument, error) {
	var f universeFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode universe: %w", err)
	}

	out := make([]contracts.Instrument, 0)
	for _, idx := range f.Indices {
		for _, e := range idx.Instruments {
			ticker := e.Ticker
			if ticker == "" {
				ticker = SelectTicker(e.Symbols)
			}
			if ticker == "" {
				continue
			}
			out = append(out, contracts.Instrument{Name: e.Name, Ticker: ticker})
		}
	}
	return out, nil
}

// SelectTicker picks the EUR exchange listing of an instrument
// 1) EUR + .F/.DE  2) .F/.DE  3) EUR
func SelectTicker(symbols []SymbolEntry) string {
	isGerman := func(t string) bool {
		return strings.HasSuffix(t, ".F") || strings.HasSuffix(t, ".DE")
	}

	for _, s := range symbols {
		if s.Currency == "EUR" && isGerman(s.Yahoo) {
			return s.Yahoo
		}
	}
	for _, s := range symbols {
		if isGerman(s.Yahoo) {
			return s.Yahoo
		}
	}
	for _, s := range symbols {
		if s.Currency == "EUR" && s.Yahoo != "" {
			return s.Yahoo
		}
	}
	return ""
}
