package mq

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ClerkAI/app/dal/product"
	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/catalog"
	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

// StartCanalProductConsumer keeps the catalog in step with the products
// table. It blocks until ctx is done.
func StartCanalProductConsumer(ctx context.Context, sc *svc.ServiceContext) error {
	if len(sc.Config.KafkaConf.Broker) == 0 || sc.Config.KafkaConf.ProductsTopic == "" || sc.Config.KafkaConf.Group == "" {
		return nil
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     sc.Config.KafkaConf.Broker,
		GroupID:     sc.Config.KafkaConf.Group,
		Topic:       sc.Config.KafkaConf.ProductsTopic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		MaxWait:     50 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logx.WithContext(ctx).Errorf("fetch product change failed: %v", err)
			continue
		}
		var evt CanalMessageProducts
		if err := json.Unmarshal(m.Value, &evt); err != nil {
			logx.WithContext(ctx).Errorf("decode product change failed: %v", err)
		} else if err := HandleCanalProductMessage(ctx, sc.CatalogSyncer, evt); err != nil {
			logx.WithContext(ctx).Errorf("apply product change failed: %v", err)
		}
		_ = r.CommitMessages(ctx, m)
	}
}

// HandleCanalProductMessage applies one canal message to the catalog.
func HandleCanalProductMessage(ctx context.Context, syncer catalog.Syncer, msg CanalMessageProducts) error {
	if syncer == nil || msg.IsDdl || (msg.Table != "" && msg.Table != "products") {
		return nil
	}
	for _, row := range msg.Data {
		var err error
		switch strings.ToUpper(msg.Type) {
		case canalInsert, canalUpdate:
			err = syncer.Upsert(ctx, row.toProduct())
		case canalDelete:
			err = syncer.Delete(ctx, row.ID)
		default:
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r ProductRow) toProduct() clerk.Product {
	return clerk.Product{
		Id:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Rating:      r.Rating,
		Category:    r.Category,
		Colors:      product.SplitColors(r.Colors),
		Stock:       r.Stock,
		Image:       r.Picture,
	}
}
