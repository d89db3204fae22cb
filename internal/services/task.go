package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

var validTaskStatuses = map[string]struct{}{
	domain.TaskStatusTodo:       {},
	domain.TaskStatusInProgress: {},
	domain.TaskStatusBlocked:    {},
	domain.TaskStatusDone:       {},
}

type TaskCreateInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ProjectID   *uuid.UUID `json:"project_id"`
	LeadID      *uuid.UUID `json:"lead_id"`
	ClientID    *uuid.UUID `json:"client_id"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	AgencyID    *uuid.UUID `json:"agency_id"`
}

type TaskUpdateInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	AgencyID    *uuid.UUID `json:"agency_id"`
}

type TaskService interface {
	Create(ctx context.Context, in TaskCreateInput) (*domain.Task, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID, projectID *uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, id uuid.UUID, in TaskUpdateInput) (*domain.Task, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type taskService struct {
	db          *gorm.DB
	log         *logger.Logger
	taskRepo    repos.TaskRepo
	projectRepo repos.ProjectRepo
	leadRepo    repos.LeadRepo
	clientRepo  repos.ClientRepo
	userRepo    repos.UserRepo
}

func NewTaskService(
	db *gorm.DB,
	log *logger.Logger,
	taskRepo repos.TaskRepo,
	projectRepo repos.ProjectRepo,
	leadRepo repos.LeadRepo,
	clientRepo repos.ClientRepo,
	userRepo repos.UserRepo,
) TaskService {
	return &taskService{
		db:          db,
		log:         log.With("service", "TaskService"),
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		leadRepo:    leadRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
	}
}

// checkTaskRefs verifies every optional reference resolves inside the
// task's agency. Runs inside the caller's transaction.
func (s *taskService) checkTaskRefs(dbc dbctx.Context, op string, agencyID uuid.UUID, projectID, leadID, clientID, assignedTo *uuid.UUID) error {
	if projectID != nil && *projectID != uuid.Nil {
		project, err := s.projectRepo.GetByID(dbc, agencyID, *projectID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if project == nil {
			return apperr.Validation(op, "project_id does not reference a project in this agency")
		}
	}
	if leadID != nil && *leadID != uuid.Nil {
		lead, err := s.leadRepo.GetByID(dbc, agencyID, *leadID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if lead == nil {
			return apperr.Validation(op, "lead_id does not reference a lead in this agency")
		}
	}
	if clientID != nil && *clientID != uuid.Nil {
		client, err := s.clientRepo.GetByID(dbc, agencyID, *clientID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if client == nil {
			return apperr.Validation(op, "client_id does not reference a client in this agency")
		}
	}
	if assignedTo != nil && *assignedTo != uuid.Nil {
		assignee, err := s.userRepo.GetScoped(dbc, agencyID, *assignedTo)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if assignee == nil {
			return apperr.Validation(op, "assigned_to does not reference a user in this agency")
		}
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, in TaskCreateInput) (*domain.Task, error) {
	const op = "task.Create"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageTasks, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation(op, "title is required")
	}
	status := in.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	if _, ok := validTaskStatuses[status]; !ok {
		return nil, apperr.Validation(op, "unknown task status "+status)
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if _, ok := validPriorities[priority]; !ok {
		return nil, apperr.Validation(op, "unknown priority "+priority)
	}

	var created *domain.Task
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.checkTaskRefs(dbc, op, agencyID, in.ProjectID, in.LeadID, in.ClientID, in.AssignedTo); err != nil {
			return err
		}
		task := &domain.Task{
			ID:          uuid.New(),
			AgencyID:    agencyID,
			ProjectID:   in.ProjectID,
			LeadID:      in.LeadID,
			ClientID:    in.ClientID,
			AssignedTo:  in.AssignedTo,
			CreatedBy:   rd.UserID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Status:      status,
			Priority:    priority,
			DueDate:     in.DueDate,
		}
		if err := s.taskRepo.Create(dbc, task); err != nil {
			return apperr.MapDB(op, err)
		}
		created = task
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *taskService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Task, error) {
	const op = "task.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if task == nil {
		return nil, apperr.NotFound(op, "task not found")
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, explicitAgencyID *uuid.UUID, projectID *uuid.UUID) ([]*domain.Task, error) {
	const op = "task.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	var rows []*domain.Task
	if projectID != nil && *projectID != uuid.Nil {
		rows, err = s.taskRepo.ListByProject(dbc, agencyID, *projectID)
	} else {
		rows, err = s.taskRepo.List(dbc, agencyID)
	}
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, in TaskUpdateInput) (*domain.Task, error) {
	const op = "task.Update"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageTasks, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.Validation(op, "title cannot be empty")
	}
	if in.Status != nil {
		if _, ok := validTaskStatuses[*in.Status]; !ok {
			return nil, apperr.Validation(op, "unknown task status "+*in.Status)
		}
	}
	if in.Priority != nil {
		if _, ok := validPriorities[*in.Priority]; !ok {
			return nil, apperr.Validation(op, "unknown priority "+*in.Priority)
		}
	}

	var updated *domain.Task
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		task, err := s.taskRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if task == nil {
			return apperr.NotFound(op, "task not found")
		}
		if err := s.checkTaskRefs(dbc, op, agencyID, nil, nil, nil, in.AssignedTo); err != nil {
			return err
		}
		if in.Title != nil {
			task.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.Status != nil {
			task.Status = *in.Status
		}
		if in.Priority != nil {
			task.Priority = *in.Priority
		}
		if in.AssignedTo != nil {
			task.AssignedTo = in.AssignedTo
		}
		if in.DueDate != nil {
			task.DueDate = in.DueDate
		}
		if _, err := s.taskRepo.Update(dbc, agencyID, task); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = task
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "task.Delete"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return err
	}
	if err := requireCapability(rd, authz.CapManageTasks, op); err != nil {
		return err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return err
	}
	affected, err := s.taskRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "task not found")
	}
	return nil
}
