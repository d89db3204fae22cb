package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type ClientRepo interface {
	Create(dbc dbctx.Context, client *domain.Client) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Client, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Client, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, client *domain.Client) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: baseLog.With("repo", "ClientRepo")}
}

func (r *clientRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *clientRepo) Create(dbc dbctx.Context, client *domain.Client) error {
	if client == nil {
		return nil
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	return r.handle(dbc).Create(client).Error
}

func (r *clientRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Client, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Client
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *clientRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Client, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Client
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *clientRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, client *domain.Client) (int64, error) {
	if client == nil || client.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Client{}).
		Where("agency_id = ? AND id = ?", agencyID, client.ID).
		Updates(map[string]interface{}{
			"name":          client.Name,
			"contact_name":  client.ContactName,
			"contact_email": client.ContactEmail,
			"contact_phone": client.ContactPhone,
			"industry":      client.Industry,
			"status":        client.Status,
		})
	return res.RowsAffected, res.Error
}

func (r *clientRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Client{})
	return res.RowsAffected, res.Error
}

func (r *clientRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Client{})
	return res.RowsAffected, res.Error
}

func (r *clientRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Client{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
