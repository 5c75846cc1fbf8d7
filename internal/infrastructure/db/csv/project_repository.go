package csv

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

var projectColumns = []string{"project_id", "name", "category", "goal_amount", "deadline", "raised_amount"}

// ProjectRepository reads and updates the projects collection. Get is a
// scan plus key match; there is no secondary index, which is fine at the
// dataset sizes this store targets.
type ProjectRepository struct {
	c *collection
}

func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{c: &s.projects}
}

func (r *ProjectRepository) List(_ context.Context) ([]domain.Project, error) {
	rows, err := r.c.rows()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := decodeProject(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProjectRepository) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ProjectID == projectID {
			return &projects[i], nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

// Update rewrites the collection with p's row replaced. No-op when the
// project id is absent.
func (r *ProjectRepository) Update(_ context.Context, p *domain.Project) error {
	return r.c.mutate(func(rows [][]string) ([][]string, bool) {
		for i, row := range rows {
			if len(row) > 0 && row[0] == p.ProjectID {
				rows[i] = encodeProject(p)
				return rows, true
			}
		}
		return rows, false
	})
}

func encodeProject(p *domain.Project) []string {
	return []string{
		p.ProjectID,
		p.Name,
		p.Category,
		strconv.FormatInt(p.GoalAmount, 10),
		p.Deadline.Format(dateLayout),
		strconv.FormatInt(p.RaisedAmount, 10),
	}
}

func decodeProject(row []string) (domain.Project, error) {
	if len(row) != len(projectColumns) {
		return domain.Project{}, fmt.Errorf("projects: malformed row %q", row)
	}
	goal, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return domain.Project{}, fmt.Errorf("projects: goal_amount %q: %w", row[3], err)
	}
	deadline, err := time.Parse(dateLayout, row[4])
	if err != nil {
		return domain.Project{}, fmt.Errorf("projects: deadline %q: %w", row[4], err)
	}
	raised, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return domain.Project{}, fmt.Errorf("projects: raised_amount %q: %w", row[5], err)
	}
	return domain.Project{
		ProjectID:    row[0],
		Name:         row[1],
		Category:     row[2],
		GoalAmount:   goal,
		Deadline:     deadline,
		RaisedAmount: raised,
	}, nil
}
