package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

var validProjectStatuses = map[string]struct{}{
	domain.ProjectStatusPlanning:  {},
	domain.ProjectStatusActive:    {},
	domain.ProjectStatusOnHold:    {},
	domain.ProjectStatusCompleted: {},
	domain.ProjectStatusCanceled:  {},
}

var validPriorities = map[string]struct{}{
	domain.PriorityLow:    {},
	domain.PriorityMedium: {},
	domain.PriorityHigh:   {},
	domain.PriorityUrgent: {},
}

type ProjectCreateInput struct {
	ClientID    uuid.UUID  `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Budget      float64    `json:"budget"`
	AgencyID    *uuid.UUID `json:"agency_id"`
}

type ProjectUpdateInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Budget      *float64   `json:"budget"`
	AgencyID    *uuid.UUID `json:"agency_id"`
}

type ProjectService interface {
	Create(ctx context.Context, in ProjectCreateInput) (*domain.Project, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID, clientID *uuid.UUID) ([]*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, in ProjectUpdateInput) (*domain.Project, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	clientRepo  repos.ClientRepo
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projectRepo repos.ProjectRepo, clientRepo repos.ClientRepo) ProjectService {
	return &projectService{
		db:          db,
		log:         log.With("service", "ProjectService"),
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

func (s *projectService) Create(ctx context.Context, in ProjectCreateInput) (*domain.Project, error) {
	const op = "project.Create"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageProjects, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation(op, "name is required")
	}
	if in.ClientID == uuid.Nil {
		return nil, apperr.Validation(op, "client_id is required")
	}
	status := in.Status
	if status == "" {
		status = domain.ProjectStatusPlanning
	}
	if _, ok := validProjectStatuses[status]; !ok {
		return nil, apperr.Validation(op, "unknown project status "+status)
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if _, ok := validPriorities[priority]; !ok {
		return nil, apperr.Validation(op, "unknown priority "+priority)
	}
	if in.Budget < 0 {
		return nil, apperr.Validation(op, "budget cannot be negative")
	}

	var created *domain.Project
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		// The referenced client must resolve inside the same agency. A
		// client from another tenant is reported as validation, never as
		// a hint that the row exists elsewhere.
		client, err := s.clientRepo.GetByID(dbc, agencyID, in.ClientID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if client == nil {
			return apperr.Validation(op, "client_id does not reference a client in this agency")
		}

		project := &domain.Project{
			ID:          uuid.New(),
			AgencyID:    agencyID,
			ClientID:    in.ClientID,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Status:      status,
			Priority:    priority,
			Budget:      in.Budget,
			CreatedBy:   rd.UserID,
		}
		if err := s.projectRepo.Create(dbc, project); err != nil {
			return apperr.MapDB(op, err)
		}
		created = project
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *projectService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Project, error) {
	const op = "project.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if project == nil {
		return nil, apperr.NotFound(op, "project not found")
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, explicitAgencyID *uuid.UUID, clientID *uuid.UUID) ([]*domain.Project, error) {
	const op = "project.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	var rows []*domain.Project
	if clientID != nil && *clientID != uuid.Nil {
		rows, err = s.projectRepo.ListByClient(dbc, agencyID, *clientID)
	} else {
		rows, err = s.projectRepo.List(dbc, agencyID)
	}
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, in ProjectUpdateInput) (*domain.Project, error) {
	const op = "project.Update"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageProjects, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation(op, "name cannot be empty")
	}
	if in.Status != nil {
		if _, ok := validProjectStatuses[*in.Status]; !ok {
			return nil, apperr.Validation(op, "unknown project status "+*in.Status)
		}
	}
	if in.Priority != nil {
		if _, ok := validPriorities[*in.Priority]; !ok {
			return nil, apperr.Validation(op, "unknown priority "+*in.Priority)
		}
	}
	if in.Budget != nil && *in.Budget < 0 {
		return nil, apperr.Validation(op, "budget cannot be negative")
	}

	var updated *domain.Project
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		project, err := s.projectRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if project == nil {
			return apperr.NotFound(op, "project not found")
		}
		if in.Name != nil {
			project.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			project.Description = *in.Description
		}
		if in.Status != nil {
			project.Status = *in.Status
		}
		if in.Priority != nil {
			project.Priority = *in.Priority
		}
		if in.Budget != nil {
			project.Budget = *in.Budget
		}
		if _, err := s.projectRepo.Update(dbc, agencyID, project); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = project
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *projectService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "project.Delete"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return err
	}
	if err := requireCapability(rd, authz.CapManageProjects, op); err != nil {
		return err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return err
	}
	affected, err := s.projectRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "project not found")
	}
	return nil
}
