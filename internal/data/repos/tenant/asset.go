package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type AssetRepo interface {
	Create(dbc dbctx.Context, asset *domain.Asset) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Asset, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Asset, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, asset *domain.Asset) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *assetRepo) Create(dbc dbctx.Context, asset *domain.Asset) error {
	if asset == nil {
		return nil
	}
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	return r.handle(dbc).Create(asset).Error
}

func (r *assetRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Asset, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Asset
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *assetRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Asset, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Asset
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assetRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, asset *domain.Asset) (int64, error) {
	if asset == nil || asset.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Asset{}).
		Where("agency_id = ? AND id = ?", agencyID, asset.ID).
		Updates(map[string]interface{}{
			"name":     asset.Name,
			"kind":     asset.Kind,
			"metadata": asset.Metadata,
		})
	return res.RowsAffected, res.Error
}

func (r *assetRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Asset{})
	return res.RowsAffected, res.Error
}

func (r *assetRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Asset{})
	return res.RowsAffected, res.Error
}

func (r *assetRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Asset{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
