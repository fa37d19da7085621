package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

const collectionAudit = "audit_logs"

// AuditRepository stores the append-only action log.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

type mongoAuditEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CandidateID string             `bson:"candidate_id"`
	TemplateID  string             `bson:"template_id"`
	Action      string             `bson:"action"`
	ActorID     string             `bson:"actor_id"`
	Timestamp   time.Time          `bson:"timestamp"`
}

func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEntry{
		CandidateID: entry.CandidateID,
		TemplateID:  entry.TemplateID,
		Action:      entry.Action,
		ActorID:     entry.ActorID,
		Timestamp:   entry.Timestamp.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int64) ([]*domain.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("load audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAuditEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}

	out := make([]*domain.AuditEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.AuditEntry{
			ID:          d.ID.Hex(),
			CandidateID: d.CandidateID,
			TemplateID:  d.TemplateID,
			Action:      d.Action,
			ActorID:     d.ActorID,
			Timestamp:   d.Timestamp,
		})
	}
	return out, nil
}

func (r *AuditRepository) Clear(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear audit log: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes keeps "newest first" reads cheap as the log grows.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
