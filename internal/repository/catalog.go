package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository stores catalog products in MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *MongoDB) *ProductRepository {
	return &ProductRepository{collection: db.Products}
}

// Get returns the product with the given id.
func (r *ProductRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert replaces the product document, creating it when missing.
func (r *ProductRepository) Upsert(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product, options.Replace().SetUpsert(true))
	return err
}

// List returns products ordered by id.
func (r *ProductRepository) List(ctx context.Context, limit int) ([]*model.Product, error) {
	findOptions := options.Find().SetSort(bson.M{"_id": 1})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// PricelistRepository stores pricelists in MongoDB.
type PricelistRepository struct {
	collection *mongo.Collection
}

// NewPricelistRepository creates a new pricelist repository.
func NewPricelistRepository(db *MongoDB) *PricelistRepository {
	return &PricelistRepository{collection: db.Pricelists}
}

// Get returns the pricelist with the given id.
func (r *PricelistRepository) Get(ctx context.Context, id string) (*model.Pricelist, error) {
	var pl model.Pricelist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("pricelist %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

// Upsert replaces the pricelist document, creating it when missing.
func (r *PricelistRepository) Upsert(ctx context.Context, pricelist *model.Pricelist) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pricelist.ID}, pricelist, options.Replace().SetUpsert(true))
	return err
}

// OrderRepository stores sale orders in MongoDB.
type OrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *MongoDB) *OrderRepository {
	return &OrderRepository{collection: db.Orders}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, order)
	return err
}

// Get returns the order with the given id.
func (r *OrderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update saves the mutable order header fields.
func (r *OrderRepository) Update(ctx context.Context, order *model.Order) error {
	order.UpdatedAt = time.Now().UTC()
	res, err := r.collection.UpdateByID(ctx, order.ID, bson.M{"$set": bson.M{
		"name":         order.Name,
		"partner_name": order.PartnerName,
		"pricelist_id": order.PricelistID,
		"updated_at":   order.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}
	return nil
}
