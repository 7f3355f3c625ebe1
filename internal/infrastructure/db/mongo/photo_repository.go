package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

const collectionPhotos = "photos"

type PhotoRepository struct {
	col *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{col: db.Collection(collectionPhotos)}
}

func (r *PhotoRepository) Insert(ctx context.Context, photos []domain.Photo) ([]domain.Photo, error) {
	if len(photos) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(photos))
	out := make([]domain.Photo, len(photos))
	for i, p := range photos {
		p.ID = primitive.NewObjectID().Hex()
		out[i] = p
		docs = append(docs, p)
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert photos: %w", err)
	}
	return out, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var photo domain.Photo
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&photo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return &photo, nil
}

func (r *PhotoRepository) FindByAlbum(ctx context.Context, albumID string) ([]domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort := bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}
	cur, err := r.col.Find(ctx, bson.M{"album_id": albumID}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer cur.Close(ctx)

	photos := []domain.Photo{}
	if err := cur.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	return photos, nil
}

func (r *PhotoRepository) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"album_id": albumID})
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}

func (r *PhotoRepository) Update(ctx context.Context, photo *domain.Photo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": photo.ID}, photo)
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// EnsureIndexes creates the album lookup index used by listing and the
// per-album count.
func (r *PhotoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "album_id", Value: 1}, {Key: "order", Value: 1}},
	})
	return err
}
