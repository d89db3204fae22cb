package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type ContactRepo interface {
	Create(dbc dbctx.Context, contact *domain.Contact) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Contact, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Contact, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, contact *domain.Contact) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return &contactRepo{db: db, log: baseLog.With("repo", "ContactRepo")}
}

func (r *contactRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *contactRepo) Create(dbc dbctx.Context, contact *domain.Contact) error {
	if contact == nil {
		return nil
	}
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	return r.handle(dbc).Create(contact).Error
}

func (r *contactRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Contact, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Contact
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *contactRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Contact, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Contact
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contactRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, contact *domain.Contact) (int64, error) {
	if contact == nil || contact.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Contact{}).
		Where("agency_id = ? AND id = ?", agencyID, contact.ID).
		Updates(map[string]interface{}{
			"name":  contact.Name,
			"email": contact.Email,
			"phone": contact.Phone,
			"title": contact.Title,
		})
	return res.RowsAffected, res.Error
}

func (r *contactRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Contact{})
	return res.RowsAffected, res.Error
}

func (r *contactRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Contact{})
	return res.RowsAffected, res.Error
}

func (r *contactRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Contact{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
