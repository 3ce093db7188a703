package catalog

import (
	"context"
	"strings"

	"ClerkAI/app/services/clerk/clerk"
)

// Catalog is the read-only product source the assistant works against.
type Catalog interface {
	GetProducts(ctx context.Context) ([]clerk.Product, error)
	// GetProduct returns nil, nil when the id is unknown.
	GetProduct(ctx context.Context, id int64) (*clerk.Product, error)
}

// Syncer applies product change events coming from the database binlog.
type Syncer interface {
	Upsert(ctx context.Context, p clerk.Product) error
	Delete(ctx context.Context, id int64) error
}

// Categories lists distinct categories in first-seen order.
func Categories(products []clerk.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		key := strings.ToLower(p.Category)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Find looks a product up inside an already loaded snapshot.
func Find(products []clerk.Product, id int64) (clerk.Product, bool) {
	for _, p := range products {
		if p.Id == id {
			return p, true
		}
	}
	return clerk.Product{}, false
}
