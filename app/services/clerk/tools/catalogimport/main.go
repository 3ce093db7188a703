package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"ClerkAI/app/dal/product"
	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/catalog"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// A tiny helper to load the catalog seed YAML into MySQL.
// Usage:
//
//	go run ./app/services/clerk/tools/catalogimport \
//	  -dsn   "root:root@tcp(mysql:3306)/clerk?charset=utf8mb4&parseTime=True&loc=Local" \
//	  -seed  "app/services/clerk/internal/catalog/seed.yaml" \
//	  -cache "redis:6379"
func main() {
	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("CLERK_MYSQL_DSN"), "MySQL DSN of the clerk database")
	seed := flag.String("seed", "", "path to a catalog YAML file; the embedded seed when empty")
	cacheHost := flag.String("cache", "127.0.0.1:6379", "redis host of the product row cache")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("-dsn is required")
	}

	products, err := loadProducts(*seed)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	conn := sqlx.NewMysql(*dsn)
	model := product.NewProductsModel(conn, cache.CacheConf{{
		RedisConf: redis.RedisConf{Host: *cacheHost, Type: redis.NodeType},
		Weight:    100,
	}})

	ctx := context.Background()
	for _, p := range products {
		if err := model.Upsert(ctx, catalog.ToRow(p)); err != nil {
			log.Fatalf("upsert product %d: %v", p.Id, err)
		}
	}

	ids, err := model.FindAllProductId(ctx)
	if err != nil {
		log.Fatalf("verify import: %v", err)
	}
	fmt.Printf("Imported %d products, %d in table.\n", len(products), len(ids))
}

func loadProducts(path string) ([]clerk.Product, error) {
	if path == "" {
		return catalog.NewSeedMemory().GetProducts(context.Background())
	}
	mem, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return mem.GetProducts(context.Background())
}
