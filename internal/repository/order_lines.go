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

const orderLineSequenceCounter = "order_line_sequence"

// OrderLineRepository stores order lines in MongoDB.
type OrderLineRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewOrderLineRepository creates a new order line repository.
func NewOrderLineRepository(db *MongoDB) *OrderLineRepository {
	return &OrderLineRepository{
		collection: db.OrderLines,
		counters:   db.Counters,
	}
}

// reserveSequence reserves n consecutive sequence numbers and returns the first.
func (r *OrderLineRepository) reserveSequence(ctx context.Context, n int) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": orderLineSequenceCounter},
		bson.M{"$inc": bson.M{"value": int64(n)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("reserve line sequence: %w", err)
	}
	return counter.Value - int64(n) + 1, nil
}

// CreateMany inserts the lines in one ordered batch.
func (r *OrderLineRepository) CreateMany(ctx context.Context, lines []*model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	first, err := r.reserveSequence(ctx, len(lines))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(lines))
	for i, line := range lines {
		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		if line.TaxIDs == nil {
			line.TaxIDs = []string{}
		}
		line.Sequence = first + int64(i)
		line.CreatedAt = now
		line.UpdatedAt = now
		docs[i] = line
	}

	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("insert order lines: %w", err)
	}
	return nil
}

// Get returns the line with the given id.
func (r *OrderLineRepository) Get(ctx context.Context, id string) (*model.OrderLine, error) {
	var line model.OrderLine
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&line)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order line %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// GetMany returns the lines with the given ids, in the order of ids.
func (r *OrderLineRepository) GetMany(ctx context.Context, ids []string) ([]*model.OrderLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	lines, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.OrderLine, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
	}
	out := make([]*model.OrderLine, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("order line %s: %w", id, ErrNotFound)
		}
		out = append(out, l)
	}
	return out, nil
}

// Update sets the listed fields of the line.
func (r *OrderLineRepository) Update(ctx context.Context, line *model.OrderLine, fields []model.Field) error {
	if len(fields) == 0 {
		return nil
	}

	line.UpdatedAt = time.Now().UTC()
	set := bson.M{"updated_at": line.UpdatedAt}
	unset := bson.M{}
	for _, f := range fields {
		if f == model.FieldPackParent && line.PackParentLineID == "" {
			unset[string(f)] = ""
			continue
		}
		set[string(f)] = line.FieldValue(f)
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.collection.UpdateByID(ctx, line.ID, update)
	if err != nil {
		return fmt.Errorf("update order line %s: %w", line.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order line %s: %w", line.ID, ErrNotFound)
	}
	return nil
}

// Children returns the component lines of a pack line.
func (r *OrderLineRepository) Children(ctx context.Context, parentID string) ([]*model.OrderLine, error) {
	return r.find(ctx, bson.M{"pack_parent_line_id": parentID})
}

// ListByOrder returns all lines of an order in document order.
func (r *OrderLineRepository) ListByOrder(ctx context.Context, orderID string) ([]*model.OrderLine, error) {
	lines, err := r.find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return nil, err
	}
	return model.DocumentOrder(lines), nil
}

func (r *OrderLineRepository) find(ctx context.Context, filter bson.M) ([]*model.OrderLine, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var lines []*model.OrderLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
