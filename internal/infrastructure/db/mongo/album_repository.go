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

const collectionAlbums = "albums"

type AlbumRepository struct {
	col *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) *AlbumRepository {
	return &AlbumRepository{col: db.Collection(collectionAlbums)}
}

func (r *AlbumRepository) Create(ctx context.Context, album *domain.Album) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *album
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlbumTitleTaken
		}
		return nil, fmt.Errorf("insert album: %w", err)
	}
	return &created, nil
}

func (r *AlbumRepository) FindByID(ctx context.Context, id string) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var album domain.Album
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&album); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}
	return &album, nil
}

func (r *AlbumRepository) FindAll(ctx context.Context, onlyActive bool) ([]domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if onlyActive {
		filter["is_active"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer cur.Close(ctx)

	albums := []domain.Album{}
	if err := cur.All(ctx, &albums); err != nil {
		return nil, fmt.Errorf("decode albums: %w", err)
	}
	return albums, nil
}

func (r *AlbumRepository) Update(ctx context.Context, album *domain.Album) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": album.ID}, album)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlbumTitleTaken
		}
		return fmt.Errorf("update album: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

// EnsureIndexes enforces unique album titles.
func (r *AlbumRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
