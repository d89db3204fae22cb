package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type LeadRepo interface {
	Create(dbc dbctx.Context, lead *domain.Lead) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Lead, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Lead, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, lead *domain.Lead) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type leadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadRepo(db *gorm.DB, baseLog *logger.Logger) LeadRepo {
	return &leadRepo{db: db, log: baseLog.With("repo", "LeadRepo")}
}

func (r *leadRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *leadRepo) Create(dbc dbctx.Context, lead *domain.Lead) error {
	if lead == nil {
		return nil
	}
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	return r.handle(dbc).Create(lead).Error
}

func (r *leadRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Lead, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Lead
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *leadRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Lead, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Lead
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *leadRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, lead *domain.Lead) (int64, error) {
	if lead == nil || lead.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Lead{}).
		Where("agency_id = ? AND id = ?", agencyID, lead.ID).
		Updates(map[string]interface{}{
			"name":            lead.Name,
			"email":           lead.Email,
			"phone":           lead.Phone,
			"company":         lead.Company,
			"source":          lead.Source,
			"status":          lead.Status,
			"estimated_value": lead.EstimatedValue,
		})
	return res.RowsAffected, res.Error
}

func (r *leadRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Lead{})
	return res.RowsAffected, res.Error
}

func (r *leadRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Lead{})
	return res.RowsAffected, res.Error
}

func (r *leadRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Lead{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
