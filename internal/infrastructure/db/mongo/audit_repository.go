package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adminhub/identity-system/internal/core/domain"
)

const auditCollection = "audit_logs"

// MongoAuditRepository stores the append-only audit trail. Entries carry no
// foreign key to users, so the trail outlives deleted records.
type MongoAuditRepository struct {
	coll *mongo.Collection
	seq  *sequences
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection), seq: newSequences(db)}
}

type mongoAuditEntry struct {
	ID        int64     `bson:"_id"`
	TableName string    `bson:"table_name"`
	Action    string    `bson:"action"`
	ChangedBy string    `bson:"changed_by"`
	ChangedAt time.Time `bson:"changed_at"`
	Data      string    `bson:"data"`
}

func (r *MongoAuditRepository) Append(ctx context.Context, entry *domain.AuditLogEntry) (int64, error) {
	id, err := r.seq.Next(ctx, auditCollection)
	if err != nil {
		return 0, err
	}
	entry.ID = id

	doc := mongoAuditEntry{
		ID:        entry.ID,
		TableName: entry.TableName,
		Action:    string(entry.Action),
		ChangedBy: entry.ChangedBy,
		ChangedAt: entry.ChangedAt,
		Data:      entry.Data,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}
	return id, nil
}

func (r *MongoAuditRepository) ListRecent(ctx context.Context, page, pageSize int) ([]domain.AuditLogEntry, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "changed_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.AuditLogEntry
	for cur.Next(ctx) {
		var doc mongoAuditEntry
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode audit entry: %w", err)
		}
		items = append(items, domain.AuditLogEntry{
			ID:        doc.ID,
			TableName: doc.TableName,
			Action:    domain.AuditAction(doc.Action),
			ChangedBy: doc.ChangedBy,
			ChangedAt: doc.ChangedAt,
			Data:      doc.Data,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}

	return items, total, nil
}
