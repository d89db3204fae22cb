package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusBlocked    = "blocked"
	TaskStatusDone       = "done"
)

// Task may optionally hang off a project, lead, or client; each such
// reference, plus the assignee and creator, must resolve inside the
// task's own agency.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID    uuid.UUID  `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index;column:project_id" json:"project_id"`
	LeadID      *uuid.UUID `gorm:"type:uuid;index;column:lead_id" json:"lead_id"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index;column:client_id" json:"client_id"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index;column:assigned_to" json:"assigned_to"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Status      string     `gorm:"not null;default:todo;column:status" json:"status"`
	Priority    string     `gorm:"not null;default:medium;column:priority" json:"priority"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Task) TableName() string { return "task" }
