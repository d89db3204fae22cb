package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type ProjectRepo interface {
	Create(dbc dbctx.Context, project *domain.Project) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Project, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Project, error)
	ListByClient(dbc dbctx.Context, agencyID, clientID uuid.UUID) ([]*domain.Project, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, project *domain.Project) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *projectRepo) Create(dbc dbctx.Context, project *domain.Project) error {
	if project == nil {
		return nil
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.handle(dbc).Create(project).Error
}

func (r *projectRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Project, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Project
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *projectRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Project, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Project
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *projectRepo) ListByClient(dbc dbctx.Context, agencyID, clientID uuid.UUID) ([]*domain.Project, error) {
	if agencyID == uuid.Nil || clientID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Project
	if err := r.handle(dbc).
		Where("agency_id = ? AND client_id = ?", agencyID, clientID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *projectRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, project *domain.Project) (int64, error) {
	if project == nil || project.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Project{}).
		Where("agency_id = ? AND id = ?", agencyID, project.ID).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
			"status":      project.Status,
			"priority":    project.Priority,
			"budget":      project.Budget,
		})
	return res.RowsAffected, res.Error
}

func (r *projectRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Project{})
	return res.RowsAffected, res.Error
}

func (r *projectRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Project{})
	return res.RowsAffected, res.Error
}

func (r *projectRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Project{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
