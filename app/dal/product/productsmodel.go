package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ ProductsModel = (*customProductsModel)(nil)

type (
	// ProductsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customProductsModel.
	ProductsModel interface {
		productsModel
		FindAll(ctx context.Context) ([]*Products, error)
		FindAllProductId(ctx context.Context) ([]int64, error)
		Upsert(ctx context.Context, data *Products) error
	}

	customProductsModel struct {
		*defaultProductsModel
	}
)

// NewProductsModel returns a model for the database table.
func NewProductsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ProductsModel {
	return &customProductsModel{
		defaultProductsModel: newProductsModel(conn, c, opts...),
	}
}

func (m *customProductsModel) FindAll(ctx context.Context) ([]*Products, error) {
	query := fmt.Sprintf("select %s from %s order by `id`", productsRows, m.table)
	var rows []*Products
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *customProductsModel) FindAllProductId(ctx context.Context) ([]int64, error) {
	query := fmt.Sprintf("SELECT `id` FROM %s", m.table)
	var ids []int64
	if err := m.QueryRowsNoCacheCtx(ctx, &ids, query); err != nil {
		return nil, err
	}
	return ids, nil
}

// Upsert writes a row with an explicit id, used by the seed importer.
func (m *customProductsModel) Upsert(ctx context.Context, data *Products) error {
	query := fmt.Sprintf("insert into %s (`id`,%s) values (?, ?, ?, ?, ?, ?, ?, ?, ?) "+
		"on duplicate key update `name`=values(`name`), `description`=values(`description`), `picture`=values(`picture`), "+
		"`price`=values(`price`), `rating`=values(`rating`), `category`=values(`category`), `colors`=values(`colors`), `stock`=values(`stock`)",
		m.table, productsRowsExpectAutoSet)
	if _, err := m.ExecNoCacheCtx(ctx, query, data.Id, data.Name, data.Description, data.Picture, data.Price,
		data.Rating, data.Category, data.Colors, data.Stock); err != nil {
		return err
	}
	return m.DelCacheCtx(ctx, m.formatPrimary(data.Id))
}

// SplitColors turns the comma separated colors column into a slice.
func SplitColors(colors string) []string {
	var out []string
	for _, c := range strings.Split(colors, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func JoinColors(colors []string) string {
	return strings.Join(colors, ",")
}
