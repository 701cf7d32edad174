// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-desk/models"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "taskdesk"

type seedUser struct {
	email    string
	fullName string
	role     models.Role
}

var seedUsers = []seedUser{
	{email: "admin@taskdesk.local", fullName: "Amelia Admin", role: models.RoleAdmin},
	{email: "partner@taskdesk.local", fullName: "Peter Partner", role: models.RolePartner},
	{email: "manager@taskdesk.local", fullName: "Maria Manager", role: models.RoleManager},
	{email: "staff@taskdesk.local", fullName: "Sam Staff", role: models.RoleStaff},
}

var seedCompanies = []string{"Acme Ltd", "Globex LLC", "Initech Holdings"}

type seedTask struct {
	title    string
	company  int
	assignee int
	creator  int
	status   models.TaskStatus
	priority models.Priority
	dueDays  int // relative to today; 0 means no due date
	progress int
	tags     []string
}

var seedTasks = []seedTask{
	{title: "VAT return Q1", company: 0, assignee: 3, creator: 2, status: models.StatusInProgress, priority: models.PriorityHigh, dueDays: 3, progress: 40, tags: []string{"vat"}},
	{title: "Annual accounts", company: 0, assignee: 2, creator: 1, status: models.StatusReview, priority: models.PriorityMedium, dueDays: 14, progress: 90, tags: []string{"accounts"}},
	{title: "Payroll March", company: 1, assignee: 3, creator: 0, status: models.StatusCompleted, priority: models.PriorityMedium, dueDays: -2, progress: 100, tags: []string{"payroll"}},
	{title: "Confirmation statement", company: 1, assignee: 2, creator: 2, status: models.StatusPending, priority: models.PriorityLow, dueDays: -1, tags: []string{"companies-house"}},
	{title: "Corporation tax", company: 2, assignee: 1, creator: 0, status: models.StatusPending, priority: models.PriorityHigh, dueDays: 30},
	{title: "Bookkeeping catch-up", company: 2, assignee: 3, creator: 3, status: models.StatusPending, priority: models.PriorityMedium, progress: 10, tags: []string{"bookkeeping"}},
	{title: "Director loan review", company: 0, assignee: -1, creator: 1, status: models.StatusCancelled, priority: models.PriorityLow, dueDays: 7},
}

// Seed fills the backend with sample accounts, companies and compliance
// tasks. Every account uses [SeedPassword].
func (b *Backend) Seed() error {
	profiles := make([]models.Profile, 0, len(seedUsers))
	for _, u := range seedUsers {
		p, err := b.AddUser(u.email, SeedPassword, u.fullName, u.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		profiles = append(profiles, p)
	}

	companies := make([]string, 0, len(seedCompanies))
	for _, name := range seedCompanies {
		companies = append(companies, b.AddCompany(name))
	}

	today := b.now().UTC().Truncate(24 * time.Hour)
	for _, st := range seedTasks {
		draft := models.TaskDraft{
			Title:     st.title,
			CompanyID: &companies[st.company],
			CreatedBy: &profiles[st.creator].ID,
			Status:    st.status,
			Priority:  st.priority,
			Progress:  st.progress,
			Tags:      st.tags,
		}
		if st.assignee >= 0 {
			draft.AssigneeID = &profiles[st.assignee].ID
		}
		if st.dueDays != 0 {
			due := today.AddDate(0, 0, st.dueDays)
			draft.DueDate = &due
		}
		if _, err := b.CreateTask(profiles[0], draft); err != nil {
			return fmt.Errorf("seed task %q: %w", st.title, err)
		}
	}

	b.logger.Info().
		Str("func", "Backend.Seed").
		Int("users", len(profiles)).
		Int("tasks", len(seedTasks)).
		Msg("sample data loaded")
	return nil
}
