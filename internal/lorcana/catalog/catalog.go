// Package catalog loads the static card dataset and exposes the
// consolidated card list the rest of the application operates on.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards/consolidate"
)

//go:embed datasets/cards.json
var bundledDataset []byte

// Service holds the immutable catalog: the raw print list and the
// consolidated cards built from it. The catalog is replaced wholesale on
// reload; individual entries never mutate.
type Service struct {
	mu           sync.RWMutex
	logger       *slog.Logger
	prints       []*cards.CardPrint
	consolidated []*consolidate.ConsolidatedCard
	byFullName   map[string]*consolidate.ConsolidatedCard
}

// NewService creates a catalog service populated from the bundled dataset.
func NewService(logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{logger: logger}
	if err := s.loadBytes(bundledDataset); err != nil {
		return nil, fmt.Errorf("load bundled dataset: %w", err)
	}
	return s, nil
}

// LoadFile replaces the catalog with the dataset at path.
func (s *Service) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	if err := s.loadBytes(data); err != nil {
		return fmt.Errorf("load dataset %s: %w", path, err)
	}
	s.logger.Info("catalog loaded", "path", path, "prints", s.PrintCount())
	return nil
}

func (s *Service) loadBytes(data []byte) error {
	var prints []*cards.CardPrint
	if err := json.Unmarshal(data, &prints); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	for _, p := range prints {
		if p.FullName == "" {
			p.FullName = cards.ComposeFullName(p.Name, p.Version)
		}
	}

	consolidated := consolidate.Consolidate(prints)
	byFullName := make(map[string]*consolidate.ConsolidatedCard, len(consolidated))
	for _, c := range consolidated {
		byFullName[c.FullName] = c
	}

	s.mu.Lock()
	s.prints = prints
	s.consolidated = consolidated
	s.byFullName = byFullName
	s.mu.Unlock()

	return nil
}

// All returns the consolidated card list in dataset order. Callers must not
// modify the returned slice or its entries.
func (s *Service) All() []*consolidate.ConsolidatedCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consolidated
}

// Prints returns the raw print list in dataset order.
func (s *Service) Prints() []*cards.CardPrint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prints
}

// ByFullName looks up a consolidated card by its exact full name.
func (s *Service) ByFullName(fullName string) (*consolidate.ConsolidatedCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byFullName[fullName]
	return c, ok
}

// PrintCount returns the number of raw prints loaded.
func (s *Service) PrintCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prints)
}

// SetInfo describes one card set present in the catalog.
type SetInfo struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Cards int    `json:"cards"`
}

// Sets returns the sets present in the catalog, in first-encounter order.
func (s *Service) Sets() []SetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]int)
	var sets []SetInfo
	for _, p := range s.prints {
		if i, ok := index[p.SetCode]; ok {
			sets[i].Cards++
			continue
		}
		index[p.SetCode] = len(sets)
		sets = append(sets, SetInfo{Code: p.SetCode, Name: SetName(p.SetCode), Cards: 1})
	}
	return sets
}
