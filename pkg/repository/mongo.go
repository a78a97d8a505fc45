package repository

import (
	"context"
	"time"

	"github.com/example/snackmarket/pkg/config"
	"github.com/example/snackmarket/pkg/market"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditLog stores the append-only trail of order activity in MongoDB,
// separate from the transactional store.
type MongoAuditLog struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type auditDocument struct {
	ID        string    `bson:"_id,omitempty"`
	Action    string    `bson:"action"`
	OrderID   string    `bson:"order_id"`
	Actor     string    `bson:"actor"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

func NewMongoAuditLog(cfg *config.MongoDBConfig) (*MongoAuditLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &MongoAuditLog{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (m *MongoAuditLog) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoAuditLog) Record(ctx context.Context, event market.AuditEvent) error {
	doc := auditDocument{
		Action:    event.Action,
		OrderID:   event.OrderID,
		Actor:     event.Actor,
		Data:      bson.M(event.Data),
		CreatedAt: event.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	_, err := m.collection.InsertOne(ctx, doc)
	return err
}

func (m *MongoAuditLog) Entries(ctx context.Context, orderID string, limit int64) ([]market.AuditEvent, error) {
	filter := bson.M{"order_id": orderID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []auditDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]market.AuditEvent, len(docs))
	for i, doc := range docs {
		events[i] = market.AuditEvent{
			Action:    doc.Action,
			OrderID:   doc.OrderID,
			Actor:     doc.Actor,
			Data:      map[string]interface{}(doc.Data),
			CreatedAt: doc.CreatedAt,
		}
	}
	return events, nil
}

func (m *MongoAuditLog) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
