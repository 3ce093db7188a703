package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"

	"ClerkAI/app/services/clerk/clerk"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Products []clerk.Product `yaml:"products"`
}

// Memory is an in-process catalog kept current by binlog events.
type Memory struct {
	mu       sync.RWMutex
	products []clerk.Product
}

func NewMemory(products []clerk.Product) *Memory {
	m := &Memory{products: slices.Clone(products)}
	m.sortLocked()
	return m
}

// NewSeedMemory loads the built-in demo catalog.
func NewSeedMemory() *Memory {
	products, err := ParseSeed(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog seed is invalid: %v", err))
	}
	return NewMemory(products)
}

// LoadFile reads a YAML seed file; an empty path loads the built-in seed.
func LoadFile(path string) (*Memory, error) {
	if path == "" {
		return NewSeedMemory(), nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	products, err := ParseSeed(body)
	if err != nil {
		return nil, err
	}
	return NewMemory(products), nil
}

func ParseSeed(body []byte) ([]clerk.Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	seen := make(map[int64]struct{}, len(f.Products))
	for _, p := range f.Products {
		if p.Id <= 0 {
			return nil, fmt.Errorf("parse catalog seed: product %q has no id", p.Name)
		}
		if _, dup := seen[p.Id]; dup {
			return nil, fmt.Errorf("parse catalog seed: duplicate product id %d", p.Id)
		}
		seen[p.Id] = struct{}{}
	}
	return f.Products, nil
}

func (m *Memory) GetProducts(_ context.Context) ([]clerk.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.products), nil
}

func (m *Memory) GetProduct(_ context.Context, id int64) (*clerk.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := Find(m.products, id); ok {
		return &p, nil
	}
	return nil, nil
}

func (m *Memory) Upsert(_ context.Context, p clerk.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].Id == p.Id {
			m.products[i] = p
			return nil
		}
	}
	m.products = append(m.products, p)
	m.sortLocked()
	return nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = slices.DeleteFunc(m.products, func(p clerk.Product) bool { return p.Id == id })
	return nil
}

func (m *Memory) sortLocked() {
	sort.SliceStable(m.products, func(i, j int) bool { return m.products[i].Id < m.products[j].Id })
}
