package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type TaskRepo interface {
	Create(dbc dbctx.Context, task *domain.Task) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Task, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Task, error)
	ListByProject(dbc dbctx.Context, agencyID, projectID uuid.UUID) ([]*domain.Task, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, task *domain.Task) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *taskRepo) Create(dbc dbctx.Context, task *domain.Task) error {
	if task == nil {
		return nil
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	return r.handle(dbc).Create(task).Error
}

func (r *taskRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Task, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Task
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *taskRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Task, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Task
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *taskRepo) ListByProject(dbc dbctx.Context, agencyID, projectID uuid.UUID) ([]*domain.Task, error) {
	if agencyID == uuid.Nil || projectID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Task
	if err := r.handle(dbc).
		Where("agency_id = ? AND project_id = ?", agencyID, projectID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *taskRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, task *domain.Task) (int64, error) {
	if task == nil || task.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Task{}).
		Where("agency_id = ? AND id = ?", agencyID, task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"assigned_to": task.AssignedTo,
			"due_date":    task.DueDate,
		})
	return res.RowsAffected, res.Error
}

func (r *taskRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Task{})
	return res.RowsAffected, res.Error
}

func (r *taskRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Task{})
	return res.RowsAffected, res.Error
}

func (r *taskRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Task{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
