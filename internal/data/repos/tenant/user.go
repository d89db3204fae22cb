package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

// UserRepo is partly tenant-agnostic: auth and the cascade engine
// resolve users globally (email is unique across tenants), while team
// listings stay agency-scoped.
type UserRepo interface {
	Create(dbc dbctx.Context, user *domain.User) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.User, error)
	GetScoped(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.User, error)
	ListByAgency(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.User, error)
	CountByAgencyExcluding(dbc dbctx.Context, agencyID, excludeUserID uuid.UUID) (int64, error)
	CountByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	Update(dbc dbctx.Context, user *domain.User) (int64, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *userRepo) Create(dbc dbctx.Context, user *domain.User) error {
	if user == nil {
		return nil
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.handle(dbc).Create(user).Error
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.User
	err := r.handle(dbc).Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, nil
	}
	var row domain.User
	err := r.handle(dbc).Where("email = ?", email).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userRepo) GetScoped(dbc dbctx.Context, agencyID, id uuid.UUID) (*domain.User, error) {
	if agencyID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row domain.User
	err := r.handle(dbc).Where("agency_id = ? AND id = ?", agencyID, id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userRepo) ListByAgency(dbc dbctx.Context, agencyID uuid.UUID) ([]*domain.User, error) {
	if agencyID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.User
	if err := r.handle(dbc).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userRepo) CountByAgencyExcluding(dbc dbctx.Context, agencyID, excludeUserID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.User{}).
		Where("agency_id = ? AND id <> ?", agencyID, excludeUserID).
		Count(&count).Error
	return count, err
}

func (r *userRepo) CountByAgency(dbc dbctx.Context, agencyID uuid.UUID) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.User{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	return count, err
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepo) Update(dbc dbctx.Context, user *domain.User) (int64, error) {
	if user == nil || user.ID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Model(&domain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"full_name": user.FullName,
			"role":      user.Role,
		})
	return res.RowsAffected, res.Error
}

func (r *userRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("id = ?", id).Delete(&domain.User{})
	return res.RowsAffected, res.Error
}
