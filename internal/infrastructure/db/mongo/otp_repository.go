package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

const collectionVerificationCodes = "verification_codes"

// OtpRepository stores pending email verification codes. The collection
// carries a TTL index so stale codes disappear on their own; the service
// still checks the window itself because the purge cycle can lag.
type OtpRepository struct {
	col *mongo.Collection
}

func NewOtpRepository(db *mongo.Database) *OtpRepository {
	return &OtpRepository{col: db.Collection(collectionVerificationCodes)}
}

// Upsert writes the code for the address, replacing any outstanding one.
// The write resets created_at, so the expiry window restarts.
func (r *OtpRepository) Upsert(ctx context.Context, email, code string, createdAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := domain.VerificationCode{Email: email, Code: code, CreatedAt: createdAt}
	_, err := r.col.ReplaceOne(ctx, bson.M{"email": email}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert verification code: %w", err)
	}
	return nil
}

func (r *OtpRepository) Find(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var vc domain.VerificationCode
	err := r.col.FindOne(ctx, bson.M{"email": email, "code": code}).Decode(&vc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, fmt.Errorf("find verification code: %w", err)
	}
	return &vc, nil
}

func (r *OtpRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-email lookup index and the TTL purge on
// created_at.
func (r *OtpRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(domain.OTPTTL.Seconds())),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
