package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

const collectionInquiries = "contact_inquiries"

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionInquiries)}
}

func (r *ContactRepository) Create(ctx context.Context, inquiry *domain.ContactInquiry) (*domain.ContactInquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *inquiry
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}
	return &created, nil
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]domain.ContactInquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer cur.Close(ctx)

	inquiries := []domain.ContactInquiry{}
	if err := cur.All(ctx, &inquiries); err != nil {
		return nil, fmt.Errorf("decode inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.ContactInquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inquiry domain.ContactInquiry
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return &inquiry, nil
}

func (r *ContactRepository) Update(ctx context.Context, inquiry *domain.ContactInquiry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": inquiry.ID}, inquiry)
	if err != nil {
		return fmt.Errorf("update inquiry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}
