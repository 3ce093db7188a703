package catalog

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	"ClerkAI/app/dal/product"
	"ClerkAI/app/services/clerk/clerk"

	"github.com/zeromicro/go-zero/core/bloom"
	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
)

const snapshotKey = "products"

// SQL serves the catalog from MySQL. The full listing is held in a short
// lived snapshot; single lookups go through the row cache behind a bloom
// filter of known ids.
type SQL struct {
	model    product.ProductsModel
	bloom    *bloom.Filter
	snapshot *collection.Cache
}

func NewSQL(model product.ProductsModel, bf *bloom.Filter, snapshotTTL time.Duration) (*SQL, error) {
	if snapshotTTL <= 0 {
		snapshotTTL = time.Minute
	}
	c, err := collection.NewCache(snapshotTTL, collection.WithName("clerk-catalog"))
	if err != nil {
		return nil, err
	}
	return &SQL{model: model, bloom: bf, snapshot: c}, nil
}

// Preheat loads every product id into the bloom filter.
func (s *SQL) Preheat(ctx context.Context) error {
	if s.bloom == nil {
		return nil
	}
	ids, err := s.model.FindAllProductId(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.bloom.AddCtx(ctx, []byte(strconv.FormatInt(id, 10))); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQL) GetProducts(ctx context.Context) ([]clerk.Product, error) {
	v, err := s.snapshot.Take(snapshotKey, func() (any, error) {
		rows, err := s.model.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		products := make([]clerk.Product, 0, len(rows))
		for _, row := range rows {
			products = append(products, FromRow(row))
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]clerk.Product)), nil
}

func (s *SQL) GetProduct(ctx context.Context, id int64) (*clerk.Product, error) {
	if id <= 0 {
		return nil, nil
	}
	if s.bloom != nil {
		exists, err := s.bloom.ExistsCtx(ctx, []byte(strconv.FormatInt(id, 10)))
		if err != nil {
			logx.WithContext(ctx).Errorf("bloom check product %d: %v", id, err)
		} else if !exists {
			return nil, nil
		}
	}
	row, err := s.model.FindOne(ctx, id)
	if errors.Is(err, product.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := FromRow(row)
	return &p, nil
}

// Upsert is called after the row already changed in MySQL.
func (s *SQL) Upsert(ctx context.Context, p clerk.Product) error {
	s.snapshot.Del(snapshotKey)
	if s.bloom == nil {
		return nil
	}
	return s.bloom.AddCtx(ctx, []byte(strconv.FormatInt(p.Id, 10)))
}

func (s *SQL) Delete(_ context.Context, _ int64) error {
	s.snapshot.Del(snapshotKey)
	return nil
}

func FromRow(row *product.Products) clerk.Product {
	return clerk.Product{
		Id:          row.Id,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Rating:      row.Rating,
		Category:    row.Category,
		Colors:      product.SplitColors(row.Colors),
		Stock:       row.Stock,
		Image:       row.Picture,
	}
}

func ToRow(p clerk.Product) *product.Products {
	return &product.Products{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Picture:     p.Image,
		Price:       p.Price,
		Rating:      p.Rating,
		Category:    p.Category,
		Colors:      product.JoinColors(p.Colors),
		Stock:       p.Stock,
	}
}
