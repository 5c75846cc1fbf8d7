// Package seed provisions a fresh data set for local development and demos.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Fixtures is the YAML shape of a seed file. Deadlines are date strings so
// fixture files stay hand-editable.
type Fixtures struct {
	Projects []ProjectFixture `yaml:"projects"`
	Tiers    []TierFixture    `yaml:"reward_tiers"`
	Users    []UserFixture    `yaml:"users"`
}

type ProjectFixture struct {
	ProjectID    string `yaml:"project_id"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	GoalAmount   int64  `yaml:"goal_amount"`
	Deadline     string `yaml:"deadline"`
	RaisedAmount int64  `yaml:"raised_amount"`
}

type TierFixture struct {
	ProjectID string `yaml:"project_id"`
	TierID    string `yaml:"tier_id"`
	Name      string `yaml:"name"`
	MinAmount int64  `yaml:"min_amount"`
	Quota     int64  `yaml:"quota"`
}

type UserFixture struct {
	UserID      string `yaml:"user_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	DisplayName string `yaml:"display_name"`
}

// Load reads fixtures from a YAML file.
func Load(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Entities converts the fixtures into validated domain records. Every record
// must pass entity validation against today's date before any file is written.
func (f *Fixtures) Entities(today time.Time) ([]domain.Project, []domain.RewardTier, []domain.User, error) {
	projects := make([]domain.Project, 0, len(f.Projects))
	seen := make(map[string]bool, len(f.Projects))
	for _, pf := range f.Projects {
		deadline, err := time.Parse(dateLayout, pf.Deadline)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("project %s: deadline %q: %w", pf.ProjectID, pf.Deadline, err)
		}
		p := domain.Project{
			ProjectID:    pf.ProjectID,
			Name:         pf.Name,
			Category:     pf.Category,
			GoalAmount:   pf.GoalAmount,
			Deadline:     deadline,
			RaisedAmount: pf.RaisedAmount,
		}
		if err := p.Validate(today); err != nil {
			return nil, nil, nil, fmt.Errorf("project %s: %w", pf.ProjectID, err)
		}
		if seen[p.ProjectID] {
			return nil, nil, nil, fmt.Errorf("project %s: duplicate id", p.ProjectID)
		}
		seen[p.ProjectID] = true
		projects = append(projects, p)
	}

	tiers := make([]domain.RewardTier, 0, len(f.Tiers))
	for _, tf := range f.Tiers {
		t := domain.RewardTier{
			ProjectID: tf.ProjectID,
			TierID:    tf.TierID,
			Name:      tf.Name,
			MinAmount: tf.MinAmount,
			Quota:     tf.Quota,
		}
		if err := t.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("tier %s/%s: %w", tf.ProjectID, tf.TierID, err)
		}
		if !seen[t.ProjectID] {
			return nil, nil, nil, fmt.Errorf("tier %s/%s: unknown project", tf.ProjectID, tf.TierID)
		}
		tiers = append(tiers, t)
	}

	users := make([]domain.User, 0, len(f.Users))
	for _, uf := range f.Users {
		if uf.UserID == "" || uf.Username == "" {
			return nil, nil, nil, fmt.Errorf("user %q: user_id and username are required", uf.Username)
		}
		users = append(users, domain.User{
			UserID:      uf.UserID,
			Username:    uf.Username,
			Password:    uf.Password,
			DisplayName: uf.DisplayName,
		})
	}

	return projects, tiers, users, nil
}

// Default returns the built-in demo data set: eight projects across five
// categories, two reward tiers each, and eleven backers.
func Default() *Fixtures {
	return &Fixtures{
		Projects: []ProjectFixture{
			{ProjectID: "12345678", Name: "AI For Schools", Category: "Education", GoalAmount: 100000, Deadline: "2030-01-01", RaisedAmount: 25000},
			{ProjectID: "12345679", Name: "Green Farm", Category: "Environment", GoalAmount: 80000, Deadline: "2030-02-01", RaisedAmount: 10000},
			{ProjectID: "12345680", Name: "Robotics Club", Category: "Education", GoalAmount: 120000, Deadline: "2030-03-01", RaisedAmount: 50000},
			{ProjectID: "12345681", Name: "Health App", Category: "Health", GoalAmount: 150000, Deadline: "2030-04-01", RaisedAmount: 30000},
			{ProjectID: "12345682", Name: "Open Library", Category: "Community", GoalAmount: 60000, Deadline: "2030-05-01", RaisedAmount: 20000},
			{ProjectID: "12345683", Name: "Music Studio", Category: "Arts", GoalAmount: 70000, Deadline: "2030-06-01", RaisedAmount: 15000},
			{ProjectID: "12345684", Name: "STEM Kit", Category: "Education", GoalAmount: 90000, Deadline: "2030-07-01", RaisedAmount: 40000},
			{ProjectID: "12345685", Name: "Recycling Hub", Category: "Environment", GoalAmount: 110000, Deadline: "2030-08-01", RaisedAmount: 35000},
		},
		Tiers: []TierFixture{
			{ProjectID: "12345678", TierID: "T1", Name: "Sticker Pack", MinAmount: 200, Quota: 50},
			{ProjectID: "12345678", TierID: "T2", Name: "T-Shirt", MinAmount: 600, Quota: 30},
			{ProjectID: "12345679", TierID: "T1", Name: "Seed Set", MinAmount: 300, Quota: 40},
			{ProjectID: "12345679", TierID: "T2", Name: "Workshop Pass", MinAmount: 700, Quota: 20},
			{ProjectID: "12345680", TierID: "T1", Name: "Robot Pin", MinAmount: 250, Quota: 60},
			{ProjectID: "12345680", TierID: "T2", Name: "Lab Tour", MinAmount: 800, Quota: 25},
			{ProjectID: "12345681", TierID: "T1", Name: "Health Badge", MinAmount: 200, Quota: 50},
			{ProjectID: "12345681", TierID: "T2", Name: "Premium Access", MinAmount: 1000, Quota: 10},
			{ProjectID: "12345682", TierID: "T1", Name: "Donor Wall", MinAmount: 300, Quota: 40},
			{ProjectID: "12345682", TierID: "T2", Name: "Founder Badge", MinAmount: 900, Quota: 15},
			{ProjectID: "12345683", TierID: "T1", Name: "Digital Album", MinAmount: 150, Quota: 70},
			{ProjectID: "12345683", TierID: "T2", Name: "Studio Visit", MinAmount: 900, Quota: 10},
			{ProjectID: "12345684", TierID: "T1", Name: "STEM Sticker", MinAmount: 150, Quota: 70},
			{ProjectID: "12345684", TierID: "T2", Name: "Prototype Demo", MinAmount: 1000, Quota: 10},
			{ProjectID: "12345685", TierID: "T1", Name: "Recycling Badge", MinAmount: 200, Quota: 50},
			{ProjectID: "12345685", TierID: "T2", Name: "Volunteer Kit", MinAmount: 700, Quota: 20},
		},
		Users: []UserFixture{
			{UserID: "U01", Username: "alice", Password: "alice123", DisplayName: "Alice"},
			{UserID: "U02", Username: "bob", Password: "bob123", DisplayName: "Bob"},
			{UserID: "U03", Username: "charlie", Password: "charlie123", DisplayName: "Charlie"},
			{UserID: "U04", Username: "david", Password: "david123", DisplayName: "David"},
			{UserID: "U05", Username: "eve", Password: "eve123", DisplayName: "Eve"},
			{UserID: "U06", Username: "frank", Password: "frank123", DisplayName: "Frank"},
			{UserID: "U07", Username: "grace", Password: "grace123", DisplayName: "Grace"},
			{UserID: "U08", Username: "heidi", Password: "heidi123", DisplayName: "Heidi"},
			{UserID: "U09", Username: "ivan", Password: "ivan123", DisplayName: "Ivan"},
			{UserID: "U10", Username: "judy", Password: "judy123", DisplayName: "Judy"},
			{UserID: "U11", Username: "kevin", Password: "kevin123", DisplayName: "Kevin"},
		},
	}
}
