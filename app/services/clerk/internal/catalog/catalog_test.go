package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ClerkAI/app/dal/product"
	"ClerkAI/app/services/clerk/clerk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/bloom"
	"github.com/zeromicro/go-zero/core/stores/redis/redistest"
)

func TestSeedMemory(t *testing.T) {
	ctx := context.Background()
	m := NewSeedMemory()

	products, err := m.GetProducts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Equal(t, []string{"Footwear", "Clothing", "Accessories"}, Categories(products))

	loafer, err := m.GetProduct(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, loafer)
	assert.Equal(t, "Leather Penny Loafer", loafer.Name)

	missing, err := m.GetProduct(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseSeedRejectsDuplicates(t *testing.T) {
	_, err := ParseSeed([]byte("products:\n  - id: 1\n    name: a\n  - id: 1\n    name: b\n"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("products:\n  - name: a\n"))
	assert.Error(t, err)
}

func TestMemoryUpsertDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory([]clerk.Product{{Id: 2, Name: "b"}, {Id: 1, Name: "a"}})

	require.NoError(t, m.Upsert(ctx, clerk.Product{Id: 3, Name: "c"}))
	require.NoError(t, m.Upsert(ctx, clerk.Product{Id: 1, Name: "a2"}))
	require.NoError(t, m.Delete(ctx, 2))

	products, err := m.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a2", products[0].Name)
	assert.Equal(t, int64(3), products[1].Id)
}

type fakeModel struct {
	rows     []*product.Products
	findAll  int
	findOnes int
}

func (f *fakeModel) Insert(context.Context, *product.Products) (sql.Result, error) { return nil, nil }
func (f *fakeModel) Update(context.Context, *product.Products) error             { return nil }
func (f *fakeModel) Delete(context.Context, int64) error                         { return nil }
func (f *fakeModel) Upsert(context.Context, *product.Products) error             { return nil }

func (f *fakeModel) FindOne(_ context.Context, id int64) (*product.Products, error) {
	f.findOnes++
	for _, r := range f.rows {
		if r.Id == id {
			return r, nil
		}
	}
	return nil, product.ErrNotFound
}

func (f *fakeModel) FindAll(context.Context) ([]*product.Products, error) {
	f.findAll++
	return f.rows, nil
}

func (f *fakeModel) FindAllProductId(context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.rows))
	for _, r := range f.rows {
		ids = append(ids, r.Id)
	}
	return ids, nil
}

func TestSQLCatalog(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{rows: []*product.Products{
		{Id: 1, Name: "Loafer", Category: "Footwear", Colors: "Brown, Black", Picture: "/l.jpg"},
	}}
	bf := bloom.New(redistest.CreateRedis(t), "clerk:test:bloom", 1024)
	c, err := NewSQL(model, bf, time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Preheat(ctx))

	products, err := c.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, []string{"Brown", "Black"}, products[0].Colors)
	assert.Equal(t, "/l.jpg", products[0].Image)

	_, err = c.GetProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, model.findAll)

	p, err := c.GetProduct(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)

	p, err = c.GetProduct(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 1, model.findOnes)

	model.rows = append(model.rows, &product.Products{Id: 2, Name: "Belt", Category: "Accessories"})
	require.NoError(t, c.Upsert(ctx, clerk.Product{Id: 2}))
	products, err = c.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	p, err = c.GetProduct(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Belt", p.Name)
}

func TestRowConversion(t *testing.T) {
	p := clerk.Product{Id: 7, Name: "Tie", Colors: []string{"Navy", "Burgundy"}, Image: "/t.jpg"}
	assert.Equal(t, p, FromRow(ToRow(p)))
}
