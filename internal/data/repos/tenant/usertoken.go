package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type UserTokenRepo interface {
	Create(dbc dbctx.Context, token *domain.UserToken) error
	GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*domain.UserToken, error)
	DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (r *userTokenRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *userTokenRepo) Create(dbc dbctx.Context, token *domain.UserToken) error {
	if token == nil {
		return nil
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	return r.handle(dbc).Create(token).Error
}

func (r *userTokenRepo) GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*domain.UserToken, error) {
	if refreshToken == "" {
		return nil, nil
	}
	var row domain.UserToken
	err := r.handle(dbc).Where("refresh_token = ?", refreshToken).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userTokenRepo) DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, nil
	}
	res := r.handle(dbc).Where("user_id = ?", userID).Delete(&domain.UserToken{})
	return res.RowsAffected, res.Error
}

func (r *userTokenRepo) DeleteExpired(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := r.handle(dbc).Where("expires_at < ?", cutoff).Delete(&domain.UserToken{})
	return res.RowsAffected, res.Error
}
