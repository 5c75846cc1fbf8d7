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

// projectDoc is the stored shape. Deadline keeps the calendar-string
// encoding shared with the CSV store.
type projectDoc struct {
	ProjectID    string `bson:"project_id"`
	Name         string `bson:"name"`
	Category     string `bson:"category"`
	GoalAmount   int64  `bson:"goal_amount"`
	Deadline     string `bson:"deadline"`
	RaisedAmount int64  `bson:"raised_amount"`
}

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Project
	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cursor.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	err := r.col.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the stored fields for the matching project id. Matching
// zero documents is not an error, mirroring the file store's no-op.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"project_id": p.ProjectID},
		bson.M{"$set": fromProject(p)},
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// InsertAll bulk-inserts projects; used by the seed path only.
func (r *ProjectRepository) InsertAll(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(projects))
	for i := range projects {
		docs = append(docs, fromProject(&projects[i]))
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func fromProject(p *domain.Project) projectDoc {
	return projectDoc{
		ProjectID:    p.ProjectID,
		Name:         p.Name,
		Category:     p.Category,
		GoalAmount:   p.GoalAmount,
		Deadline:     p.Deadline.Format(dateLayout),
		RaisedAmount: p.RaisedAmount,
	}
}

func (d projectDoc) toDomain() (domain.Project, error) {
	deadline, err := time.Parse(dateLayout, d.Deadline)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s: deadline %q: %w", d.ProjectID, d.Deadline, err)
	}
	return domain.Project{
		ProjectID:    d.ProjectID,
		Name:         d.Name,
		Category:     d.Category,
		GoalAmount:   d.GoalAmount,
		Deadline:     deadline,
		RaisedAmount: d.RaisedAmount,
	}, nil
}
