package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/swidge-xyz/rango-wrapper/internal/domain"
	"github.com/swidge-xyz/rango-wrapper/pkg/rango"
	"gopkg.in/yaml.v3"
)

// Package watchlist loads the swaps whose status should be tracked.

type fileRegistry struct {
	Swaps []domain.Swap `json:"swaps" yaml:"swaps"`
}

// Registry holds the swaps declared in a watchlist file. It is read-only
// once loaded.
type Registry struct {
	swaps []domain.Swap
	idx   map[string]domain.Swap
}

// LoadRegistry loads the watchlist from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("watchlist file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		swaps: make([]domain.Swap, len(fileReg.Swaps)),
		idx:   make(map[string]domain.Swap, len(fileReg.Swaps)),
	}
	for i := range fileReg.Swaps {
		s := sanitizeSwap(fileReg.Swaps[i])
		if err := validateSwap(s); err != nil {
			return nil, fmt.Errorf("swaps[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate swap id %q", s.ID)
		}
		reg.swaps[i] = s
		reg.idx[s.ID] = s
	}

	return reg, nil
}

func parseRegistry(data []byte, ext string) (fileRegistry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg fileRegistry
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return fileRegistry{}, errors.New("watchlist file format not recognized (expected YAML or JSON)")
}

func sanitizeSwap(s domain.Swap) domain.Swap {
	s.ID = strings.TrimSpace(s.ID)
	s.RequestID = strings.TrimSpace(s.RequestID)
	s.TxHash = strings.TrimSpace(s.TxHash)
	s.FromChain = strings.TrimSpace(s.FromChain)
	s.ToChain = strings.TrimSpace(s.ToChain)
	return s
}

func validateSwap(s domain.Swap) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.RequestID == "" {
		return fmt.Errorf("request_id is required for swap %q", s.ID)
	}
	if s.TxHash == "" {
		return fmt.Errorf("tx_hash is required for swap %q", s.ID)
	}
	for _, chain := range []string{s.FromChain, s.ToChain} {
		if chain == "" {
			continue
		}
		if _, err := rango.BlockchainCode(chain); err != nil {
			return fmt.Errorf("swap %q: %w", s.ID, err)
		}
	}
	return nil
}

// All returns a copy of the loaded swaps in file order.
func (r *Registry) All() []domain.Swap {
	if r == nil {
		return nil
	}

	out := make([]domain.Swap, len(r.swaps))
	copy(out, r.swaps)
	return out
}

// ByID returns the swap with the given id, if loaded.
func (r *Registry) ByID(id string) (domain.Swap, bool) {
	if r == nil {
		return domain.Swap{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Swap{}, false
	}

	s, ok := r.idx[id]
	return s, ok
}
