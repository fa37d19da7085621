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

const collectionTemplates = "templates"

type TemplateRepository struct {
	col *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{col: db.Collection(collectionTemplates)}
}

type mongoTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mt *mongoTemplate) toDomain() *domain.Template {
	return &domain.Template{
		ID:        mt.ID.Hex(),
		Name:      mt.Name,
		Type:      domain.TemplateType(mt.Type),
		Content:   mt.Content,
		CreatedAt: mt.CreatedAt,
	}
}

func (r *TemplateRepository) Insert(ctx context.Context, t *domain.Template) (*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTemplate{
		Name:      t.Name,
		Type:      string(t.Type),
		Content:   t.Content,
		CreatedAt: t.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTemplateNotFound
	}

	var mt mongoTemplate
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTemplate
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	out := make([]*domain.Template, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *TemplateRepository) Update(ctx context.Context, id string, name string, ttype domain.TemplateType, content string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTemplateNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":    name,
			"type":    string(ttype),
			"content": content,
		}},
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTemplateNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
