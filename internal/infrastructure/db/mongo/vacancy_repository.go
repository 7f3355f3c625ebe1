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

const collectionVacancies = "vacancies"

type VacancyRepository struct {
	col *mongo.Collection
}

func NewVacancyRepository(db *mongo.Database) *VacancyRepository {
	return &VacancyRepository{col: db.Collection(collectionVacancies)}
}

func (r *VacancyRepository) Create(ctx context.Context, vacancy *domain.Vacancy) (*domain.Vacancy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *vacancy
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert vacancy: %w", err)
	}
	return &created, nil
}

func (r *VacancyRepository) FindAll(ctx context.Context, onlyActive bool) ([]domain.Vacancy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if onlyActive {
		filter["is_active"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list vacancies: %w", err)
	}
	defer cur.Close(ctx)

	vacancies := []domain.Vacancy{}
	if err := cur.All(ctx, &vacancies); err != nil {
		return nil, fmt.Errorf("decode vacancies: %w", err)
	}
	return vacancies, nil
}

func (r *VacancyRepository) FindByID(ctx context.Context, id string) (*domain.Vacancy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var vacancy domain.Vacancy
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&vacancy); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("find vacancy: %w", err)
	}
	return &vacancy, nil
}

func (r *VacancyRepository) Update(ctx context.Context, vacancy *domain.Vacancy) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": vacancy.ID}, vacancy)
	if err != nil {
		return fmt.Errorf("update vacancy: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVacancyNotFound
	}
	return nil
}

func (r *VacancyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete vacancy: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVacancyNotFound
	}
	return nil
}
