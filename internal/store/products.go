package store

import (
	"context"
	"fmt"
	"strconv"

	"log/slog"

	"github.com/kingfoodmart/kfm-insights/internal/dto"
	"github.com/kingfoodmart/kfm-insights/internal/entity"
	gerr "github.com/kingfoodmart/kfm-insights/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchProducts runs the aggregation pipeline and returns raw product
// records. The pipeline pre-filters 0 < price < 1e9, rounds price to
// whole units and slices stock_history to the first 100 entries; the
// tighter per-product cap is applied later by the normalizer.
func (ms *MongoStore) FetchProducts(ctx context.Context) ([]dto.ProductDoc, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, ms.c.FetchTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "price", Value: bson.D{
				{Key: "$gt", Value: 0},
				{Key: "$lt", Value: entity.MaxPrice},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "category", Value: 1},
			{Key: "promotion", Value: 1},
			{Key: "price", Value: bson.D{{Key: "$round", Value: bson.A{"$price", 0}}}},
			{Key: "stock_history", Value: bson.D{
				{Key: "$slice", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$stock_history", bson.A{}}}},
					entity.FetchedMovementCap,
				}},
			}},
		}}},
	}

	opts := options.Aggregate().SetAllowDiskUse(true).SetBatchSize(500)
	cursor, err := ms.collection().Aggregate(fetchCtx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate: %v", gerr.ErrSourceUnavailable, err)
	}
	defer cursor.Close(fetchCtx)

	var docs []dto.ProductDoc
	for cursor.Next(fetchCtx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			// A single undecodable document never aborts the batch.
			slog.Default().ErrorContext(ctx, "skipping undecodable product document",
				slog.String("err", err.Error()),
			)
			continue
		}
		docs = append(docs, convertDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor: %v", gerr.ErrSourceUnavailable, err)
	}

	return docs, nil
}

// convertDocument coerces a dynamic document into a ProductDoc with
// per-field defaulting. Missing or mistyped fields become zero values;
// non-document movement entries are dropped here, before the engine
// ever sees them.
func convertDocument(raw bson.M) dto.ProductDoc {
	doc := dto.ProductDoc{
		Id:        asId(raw["_id"]),
		Name:      asString(raw["name"]),
		Category:  asString(raw["category"]),
		Promotion: asString(raw["promotion"]),
		Price:     asFloat(raw["price"]),
	}

	hist, ok := raw["stock_history"].(bson.A)
	if !ok {
		return doc
	}
	doc.StockHistory = make([]dto.MovementDoc, 0, len(hist))
	for _, e := range hist {
		entry, ok := e.(bson.M)
		if !ok {
			continue
		}
		doc.StockHistory = append(doc.StockHistory, dto.MovementDoc{
			Date:           asString(entry["date"]),
			StockDecreased: asFloat(entry["stock_decreased"]),
			StockIncreased: asFloat(entry["stock_increased"]),
		})
	}
	return doc
}

func asId(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
