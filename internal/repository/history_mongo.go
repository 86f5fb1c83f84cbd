package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/epq-service/internal/domain/model"
)

// DefaultHistoryLimit caps listings that do not set a limit.
const DefaultHistoryLimit = 100

// historyDocument is the MongoDB shape of a history record.
type historyDocument struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Timestamp      time.Time            `bson:"timestamp"`
	Kind           string               `bson:"kind"`
	Label          string               `bson:"label,omitempty"`
	RequestID      string               `bson:"request_id,omitempty"`
	Parameters     model.CostParameters `bson:"parameters"`
	OptimalLotSize float64              `bson:"optimal_lot_size"`
	TotalCost      float64              `bson:"total_cost"`
	Convex         bool                 `bson:"convex"`
}

func toHistoryDocument(r *model.HistoryRecord) historyDocument {
	return historyDocument{
		Timestamp:      r.Timestamp,
		Kind:           r.Kind,
		Label:          r.Label,
		RequestID:      r.RequestID,
		Parameters:     r.Parameters,
		OptimalLotSize: r.OptimalLotSize,
		TotalCost:      r.TotalCost,
		Convex:         r.Convex,
	}
}

func (d historyDocument) record() *model.HistoryRecord {
	return &model.HistoryRecord{
		ID:             d.ID.Hex(),
		Timestamp:      d.Timestamp,
		Kind:           d.Kind,
		Label:          d.Label,
		RequestID:      d.RequestID,
		Parameters:     d.Parameters,
		OptimalLotSize: d.OptimalLotSize,
		TotalCost:      d.TotalCost,
		Convex:         d.Convex,
	}
}

// HistoryRepository stores optimisation history in MongoDB.
type HistoryRepository struct {
	collection *mongo.Collection
}

// NewHistoryRepository creates a new MongoDB history repository.
func NewHistoryRepository(db *MongoDB) *HistoryRepository {
	return &HistoryRepository{collection: db.History}
}

// Append stores one record and sets its ID.
func (r *HistoryRepository) Append(ctx context.Context, record *model.HistoryRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	doc := toHistoryDocument(record)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	record.ID = doc.ID.Hex()
	return nil
}

// AppendMany stores records in one round trip.
func (r *HistoryRepository) AppendMany(ctx context.Context, records []*model.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(records))
	ids := make([]primitive.ObjectID, len(records))
	for i, record := range records {
		if record.Timestamp.IsZero() {
			record.Timestamp = now
		}
		doc := toHistoryDocument(record)
		doc.ID = primitive.NewObjectID()
		ids[i] = doc.ID
		docs[i] = doc
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := r.collection.InsertMany(ctx, docs, opts); err != nil {
		return fmt.Errorf("insert history batch: %w", err)
	}
	for i, record := range records {
		record.ID = ids[i].Hex()
	}
	return nil
}

// List returns the newest records first.
func (r *HistoryRepository) List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, historyFilter(opts.Kind), findOpts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []historyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	records := make([]*model.HistoryRecord, len(docs))
	for i, doc := range docs {
		records[i] = doc.record()
	}
	return records, nil
}

// Count returns the number of records, optionally of one kind.
func (r *HistoryRepository) Count(ctx context.Context, kind string) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, historyFilter(kind))
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func historyFilter(kind string) bson.M {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	return filter
}
