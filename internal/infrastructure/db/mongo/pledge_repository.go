package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

// pledgeDoc keeps the combined date-time string encoding shared with the
// CSV store; optional fields are empty strings, never missing keys.
type pledgeDoc struct {
	PledgeID     string `bson:"pledge_id"`
	UserID       string `bson:"user_id"`
	ProjectID    string `bson:"project_id"`
	CreatedAt    string `bson:"created_at"`
	Amount       int64  `bson:"amount"`
	TierID       string `bson:"tier_id"`
	Status       string `bson:"status"`
	RejectReason string `bson:"reject_reason"`
}

type PledgeRepository struct {
	col *mongo.Collection
}

func NewPledgeRepository(db *mongo.Database) *PledgeRepository {
	return &PledgeRepository{col: db.Collection(collectionPledges)}
}

func (r *PledgeRepository) List(ctx context.Context) ([]domain.Pledge, error) {
	return r.find(ctx, bson.M{})
}

func (r *PledgeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Pledge, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *PledgeRepository) find(ctx context.Context, filter bson.M) ([]domain.Pledge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Natural order matches insertion order for this append-only workload.
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list pledges: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Pledge
	for cursor.Next(ctx) {
		var doc pledgeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode pledge: %w", err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cursor.Err()
}

func (r *PledgeRepository) Get(ctx context.Context, pledgeID string) (*domain.Pledge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc pledgeDoc
	err := r.col.FindOne(ctx, bson.M{"pledge_id": pledgeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPledgeNotFound
		}
		return nil, fmt.Errorf("get pledge: %w", err)
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PledgeRepository) Append(ctx context.Context, p *domain.Pledge) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, pledgeDoc{
		PledgeID:     p.PledgeID,
		UserID:       p.UserID,
		ProjectID:    p.ProjectID,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		Amount:       p.Amount,
		TierID:       p.TierID,
		Status:       string(p.Status),
		RejectReason: string(p.RejectReason),
	})
	if err != nil {
		return fmt.Errorf("append pledge: %w", err)
	}
	return nil
}

func (d pledgeDoc) toDomain() (domain.Pledge, error) {
	createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)
	if err != nil {
		return domain.Pledge{}, fmt.Errorf("pledge %s: created_at %q: %w", d.PledgeID, d.CreatedAt, err)
	}
	return domain.Pledge{
		PledgeID:     d.PledgeID,
		UserID:       d.UserID,
		ProjectID:    d.ProjectID,
		CreatedAt:    createdAt,
		Amount:       d.Amount,
		TierID:       d.TierID,
		Status:       domain.PledgeStatus(d.Status),
		RejectReason: domain.RejectReason(d.RejectReason),
	}, nil
}
