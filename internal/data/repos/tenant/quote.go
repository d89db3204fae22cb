package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type QuoteRepo interface {
	Create(dbc dbctx.Context, quote *domain.Quote) error
	GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Quote, error)
	List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Quote, error)
	Update(dbc dbctx.Context, agencyID uuid.UUID, quote *domain.Quote) (int64, error)
	Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error)
	DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
}

type quoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuoteRepo(db *gorm.DB, baseLog *logger.Logger) QuoteRepo {
	return &quoteRepo{db: db, log: baseLog.With("repo", "QuoteRepo")}
}

func (r *quoteRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *quoteRepo) Create(dbc dbctx.Context, quote *domain.Quote) error {
	if quote == nil {
		return nil
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	return r.handle(dbc).Create(quote).Error
}

func (r *quoteRepo) GetByID(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.Quote, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.Quote
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *quoteRepo) List(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.Quote, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Quote
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quoteRepo) Update(dbc dbctx.Context, agencyID uuid.UUID, quote *domain.Quote) (int64, error) {
	if quote == nil || quote.ID == uuid.Nil || agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.Quote{}).
		Where("agency_id = ? AND id = ?", agencyID, quote.ID).
		Updates(map[string]interface{}{
			"title":       quote.Title,
			"amount":      quote.Amount,
			"status":      quote.Status,
			"valid_until": quote.ValidUntil,
		})
	return res.RowsAffected, res.Error
}

func (r *quoteRepo) Delete(dbc dbctx.Context, agencyID, id uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).Delete(&domain.Quote{})
	return res.RowsAffected, res.Error
}

func (r *quoteRepo) DeleteByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	if agencyID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("agency_id = ?", agencyID).Delete(&domain.Quote{})
	return res.RowsAffected, res.Error
}

func (r *quoteRepo) Count(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Quote{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}
