package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

const collectionCandidates = "candidates"

type CandidateRepository struct {
	col *mongo.Collection
}

func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{col: db.Collection(collectionCandidates)}
}

type mongoDocumentRef struct {
	FileType   string `bson:"file_type"`
	FilePath   string `bson:"file_path"`
	TemplateID string `bson:"template_id"`
}

type mongoCandidate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	StartDate string             `bson:"start_date"`
	EndDate   string             `bson:"end_date"`
	Documents []mongoDocumentRef `bson:"documents"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mc *mongoCandidate) toDomain() *domain.Candidate {
	docs := make([]domain.DocumentRef, 0, len(mc.Documents))
	for _, d := range mc.Documents {
		docs = append(docs, domain.DocumentRef{
			FileType:   d.FileType,
			FilePath:   d.FilePath,
			TemplateID: d.TemplateID,
		})
	}
	return &domain.Candidate{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		Email:     mc.Email,
		Role:      mc.Role,
		StartDate: mc.StartDate,
		EndDate:   mc.EndDate,
		Documents: docs,
		CreatedAt: mc.CreatedAt,
	}
}

func (r *CandidateRepository) Insert(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCandidate{
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Documents: []mongoDocumentRef{},
		CreatedAt: c.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCandidateNotFound
	}

	var mc mongoCandidate
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return mc.toDomain(), nil
}

// Search matches name or email case-insensitively. An empty query returns
// the whole collection.
func (r *CandidateRepository) Search(ctx context.Context, query string) ([]*domain.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		pattern := bson.M{"$regex": query, "$options": "i"}
		filter = bson.M{"$or": []bson.M{
			{"name": pattern},
			{"email": pattern},
		}}
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCandidate
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	out := make([]*domain.Candidate, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// AppendDocument atomically pushes a generated document reference onto the
// candidate's document list.
func (r *CandidateRepository) AppendDocument(ctx context.Context, id string, doc domain.DocumentRef) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCandidateNotFound
	}

	entry := mongoDocumentRef{
		FileType:   doc.FileType,
		FilePath:   doc.FilePath,
		TemplateID: doc.TemplateID,
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"documents": entry}},
	)
	if err != nil {
		return fmt.Errorf("append document: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCandidateNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear candidates: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes backs the name/email substring search.
func (r *CandidateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
