// Package tenant holds the agency-scoped repos. Every query on an
// agency-owned table carries the agency id in its WHERE clause, so a
// record outside the caller's tenant is indistinguishable from one
// that does not exist.
package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type AgencyRepo interface {
	Create(dbc dbctx.Context, agency *domain.Agency) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Agency, error)
	GetBySlug(dbc dbctx.Context, slug string) (*domain.Agency, error)
	List(dbc dbctx.Context) ([]*domain.Agency, error)
	Update(dbc dbctx.Context, agency *domain.Agency) (int64, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
	// LockByID takes a FOR UPDATE row lock, serializing concurrent
	// cascades over the same agency. Nil when the row is gone.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Agency, error)
}

type agencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgencyRepo(db *gorm.DB, baseLog *logger.Logger) AgencyRepo {
	return &agencyRepo{db: db, log: baseLog.With("repo", "AgencyRepo")}
}

func (r *agencyRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *agencyRepo) Create(dbc dbctx.Context, agency *domain.Agency) error {
	if agency == nil {
		return nil
	}
	if agency.ID == uuid.Nil {
		agency.ID = uuid.New()
	}
	return r.handle(dbc).Create(agency).Error
}

func (r *agencyRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Agency, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Agency
	err := r.handle(dbc).Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *agencyRepo) GetBySlug(dbc dbctx.Context, slug string) (*domain.Agency, error) {
	if slug == "" {
		return nil, nil
	}
	var row domain.Agency
	err := r.handle(dbc).Where("slug = ?", slug).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *agencyRepo) List(dbc dbctx.Context) ([]*domain.Agency, error) {
	var rows []*domain.Agency
	if err := r.handle(dbc).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *agencyRepo) Update(dbc dbctx.Context, agency *domain.Agency) (int64, error) {
	if agency == nil || agency.ID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Agency{}).
		Where("id = ?", agency.ID).
		Updates(map[string]interface{}{
			"name":     agency.Name,
			"slug":     agency.Slug,
			"industry": agency.Industry,
		})
	return res.RowsAffected, res.Error
}

func (r *agencyRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("id = ?", id).Delete(&domain.Agency{})
	return res.RowsAffected, res.Error
}

func (r *agencyRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Agency, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Agency
	err := r.handle(dbc).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
