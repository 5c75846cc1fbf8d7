package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

type tierDoc struct {
	ProjectID string `bson:"project_id"`
	TierID    string `bson:"tier_id"`
	Name      string `bson:"name"`
	MinAmount int64  `bson:"min_amount"`
	Quota     int64  `bson:"quota"`
}

type TierRepository struct {
	col *mongo.Collection
}

func NewTierRepository(db *mongo.Database) *TierRepository {
	return &TierRepository{col: db.Collection(collectionTiers)}
}

func (r *TierRepository) ListByProject(ctx context.Context, projectID string) ([]domain.RewardTier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.RewardTier
	for cursor.Next(ctx) {
		var doc tierDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tier: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *TierRepository) Get(ctx context.Context, projectID, tierID string) (*domain.RewardTier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tierDoc
	err := r.col.FindOne(ctx, bson.M{"project_id": projectID, "tier_id": tierID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTierNotFound
		}
		return nil, fmt.Errorf("get tier: %w", err)
	}
	t := doc.toDomain()
	return &t, nil
}

func (r *TierRepository) Update(ctx context.Context, t *domain.RewardTier) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"project_id": t.ProjectID, "tier_id": t.TierID},
		bson.M{"$set": fromTier(t)},
	)
	if err != nil {
		return fmt.Errorf("update tier: %w", err)
	}
	return nil
}

// InsertAll bulk-inserts tiers; used by the seed path only.
func (r *TierRepository) InsertAll(ctx context.Context, tiers []domain.RewardTier) error {
	if len(tiers) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tiers))
	for i := range tiers {
		docs = append(docs, fromTier(&tiers[i]))
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func fromTier(t *domain.RewardTier) tierDoc {
	return tierDoc{
		ProjectID: t.ProjectID,
		TierID:    t.TierID,
		Name:      t.Name,
		MinAmount: t.MinAmount,
		Quota:     t.Quota,
	}
}

func (d tierDoc) toDomain() domain.RewardTier {
	return domain.RewardTier{
		ProjectID: d.ProjectID,
		TierID:    d.TierID,
		Name:      d.Name,
		MinAmount: d.MinAmount,
		Quota:     d.Quota,
	}
}
