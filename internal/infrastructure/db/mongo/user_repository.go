package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

type userDoc struct {
	UserID      string `bson:"user_id"`
	Username    string `bson:"username"`
	Password    string `bson:"password"`
	DisplayName string `bson:"display_name"`
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Get(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.User{
		UserID:      doc.UserID,
		Username:    doc.Username,
		Password:    doc.Password,
		DisplayName: doc.DisplayName,
	}, nil
}

// InsertAll bulk-inserts users; used by the seed path only.
func (r *UserRepository) InsertAll(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, userDoc{
			UserID:      u.UserID,
			Username:    u.Username,
			Password:    u.Password,
			DisplayName: u.DisplayName,
		})
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}
