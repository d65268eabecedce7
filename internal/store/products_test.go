package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConvertDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := convertDocument(bson.M{
		"_id":       oid,
		"name":      "rice",
		"category":  "grains",
		"promotion": "none",
		"price":     15000.0,
		"stock_history": bson.A{
			bson.M{"date": "2025-03-10", "stock_decreased": 5.0, "stock_increased": 2.0},
			bson.M{"date": "2025-03-11", "stock_decreased": int32(3)},
		},
	})

	assert.Equal(t, oid.Hex(), doc.Id)
	assert.Equal(t, "rice", doc.Name)
	assert.Equal(t, "grains", doc.Category)
	assert.Equal(t, "none", doc.Promotion)
	assert.Equal(t, 15000.0, doc.Price)

	require.Len(t, doc.StockHistory, 2)
	assert.Equal(t, "2025-03-10", doc.StockHistory[0].Date)
	assert.Equal(t, 5.0, doc.StockHistory[0].StockDecreased)
	assert.Equal(t, 2.0, doc.StockHistory[0].StockIncreased)
	assert.Equal(t, 3.0, doc.StockHistory[1].StockDecreased)
	assert.Zero(t, doc.StockHistory[1].StockIncreased)
}

func TestConvertDocument_MissingFieldsDefault(t *testing.T) {
	doc := convertDocument(bson.M{})
	assert.Empty(t, doc.Id)
	assert.Empty(t, doc.Name)
	assert.Zero(t, doc.Price)
	assert.Empty(t, doc.StockHistory)
}

func TestConvertDocument_MistypedFieldsDefault(t *testing.T) {
	doc := convertDocument(bson.M{
		"name":          42,
		"price":         "not a number",
		"stock_history": "not an array",
	})
	assert.Empty(t, doc.Name)
	assert.Zero(t, doc.Price)
	assert.Empty(t, doc.StockHistory)
}

func TestConvertDocument_NonDocumentEntriesDropped(t *testing.T) {
	doc := convertDocument(bson.M{
		"_id":   "p1",
		"price": 1000.0,
		"stock_history": bson.A{
			"garbage",
			42,
			bson.M{"date": "2025-03-10", "stock_decreased": 1.0},
			nil,
		},
	})
	require.Len(t, doc.StockHistory, 1)
	assert.Equal(t, "2025-03-10", doc.StockHistory[0].Date)
}

func TestConvertDocument_StringId(t *testing.T) {
	doc := convertDocument(bson.M{"_id": "SKU-001", "price": 1000.0})
	assert.Equal(t, "SKU-001", doc.Id)
}

func TestAsFloat_NumericCoercions(t *testing.T) {
	d128, err := primitive.ParseDecimal128("2500.5")
	require.NoError(t, err)

	assert.Equal(t, 1.5, asFloat(1.5))
	assert.Equal(t, 2.0, asFloat(float32(2)))
	assert.Equal(t, 3.0, asFloat(int32(3)))
	assert.Equal(t, 4.0, asFloat(int64(4)))
	assert.Equal(t, 5.0, asFloat(5))
	assert.Equal(t, 2500.5, asFloat(d128))
	assert.Zero(t, asFloat(nil))
	assert.Zero(t, asFloat("7"))
}
