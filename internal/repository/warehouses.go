package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StockLine is one item quantity of a stored inventory.
// Inventories are stored as lines so item identifiers never become BSON field names.
type StockLine struct {
	Item     string `bson:"item" json:"item"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// WarehouseDocument represents a catalog warehouse document.
// Rank is the cost order: active warehouses are allocated cheapest (lowest rank) first.
type WarehouseDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Rank      int                `bson:"rank" json:"rank"`
	Inventory []StockLine        `bson:"inventory" json:"inventory"`
	Active    bool               `bson:"active" json:"active"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	UpdatedBy string             `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// Items returns the stored inventory as an item map.
func (d *WarehouseDocument) Items() model.Items {
	items := make(model.Items, len(d.Inventory))
	for _, line := range d.Inventory {
		items[line.Item] += line.Quantity
	}
	return items
}

// ToModel converts the document to the allocator's warehouse type.
func (d *WarehouseDocument) ToModel() model.Warehouse {
	return model.Warehouse{Name: d.Name, Inventory: d.Items()}
}

// StockLines converts an item map to stock lines ordered by item.
func StockLines(items map[string]int) []StockLine {
	keys := model.Items(items).Keys()
	lines := make([]StockLine, 0, len(keys))
	for _, item := range keys {
		lines = append(lines, StockLine{Item: item, Quantity: items[item]})
	}
	return lines
}

// WarehouseRepository stores the warehouse catalog.
type WarehouseRepository struct {
	collection *mongo.Collection
}

// NewWarehouseRepository creates a new warehouse repository.
func NewWarehouseRepository(db *MongoDB) *WarehouseRepository {
	return &WarehouseRepository{
		collection: db.Warehouses,
	}
}

// List returns the active warehouses in cost order.
func (r *WarehouseRepository) List(ctx context.Context) ([]WarehouseDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rank", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := []WarehouseDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Get returns the active warehouse with the given name, or nil when there is none.
func (r *WarehouseRepository) Get(ctx context.Context, name string) (*WarehouseDocument, error) {
	var doc WarehouseDocument
	err := r.collection.FindOne(ctx, bson.M{"name": name, "active": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Upsert sets a warehouse's inventory. A new (or previously removed) warehouse is
// appended to the end of the cost order; an active one keeps its rank.
func (r *WarehouseRepository) Upsert(ctx context.Context, name string, inventory map[string]int, updatedBy string) (*WarehouseDocument, error) {
	current, err := r.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	var rank int
	if current != nil {
		rank = current.Rank
	} else if rank, err = r.nextRank(ctx); err != nil {
		return nil, err
	}

	return r.write(ctx, name, rank, inventory, updatedBy)
}

// ReplaceAll makes warehouses the active catalog in the given order.
// Warehouses missing from the list are deactivated.
func (r *WarehouseRepository) ReplaceAll(ctx context.Context, warehouses []model.Warehouse, updatedBy string) ([]WarehouseDocument, error) {
	names := make([]string, 0, len(warehouses))
	for rank, w := range warehouses {
		if _, err := r.write(ctx, w.Name, rank, w.Inventory, updatedBy); err != nil {
			return nil, err
		}
		names = append(names, w.Name)
	}

	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "name": bson.M{"$nin": names}},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC(), "updated_by": updatedBy}},
	)
	if err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Delete deactivates a warehouse. It reports false when no active warehouse has the name.
func (r *WarehouseRepository) Delete(ctx context.Context, name, updatedBy string) (bool, error) {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"name": name, "active": true},
		bson.M{
			"$set": bson.M{"active": false, "updated_at": time.Now().UTC(), "updated_by": updatedBy},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *WarehouseRepository) write(ctx context.Context, name string, rank int, inventory map[string]int, updatedBy string) (*WarehouseDocument, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"rank":       rank,
			"inventory":  StockLines(inventory),
			"active":     true,
			"updated_at": now,
			"updated_by": updatedBy,
		},
		"$inc":         bson.M{"version": 1},
		"$setOnInsert": bson.M{"created_at": now},
	}

	var doc WarehouseDocument
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"name": name},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *WarehouseRepository) nextRank(ctx context.Context) (int, error) {
	var last WarehouseDocument
	err := r.collection.FindOne(
		ctx,
		bson.M{"active": true},
		options.FindOne().SetSort(bson.D{{Key: "rank", Value: -1}}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Rank + 1, nil
}
