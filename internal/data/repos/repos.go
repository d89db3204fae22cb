package repos

import (
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos/tenant"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type AgencyRepo = tenant.AgencyRepo
type UserRepo = tenant.UserRepo
type UserTokenRepo = tenant.UserTokenRepo
type ClientRepo = tenant.ClientRepo
type ProjectRepo = tenant.ProjectRepo
type LeadRepo = tenant.LeadRepo
type QuoteRepo = tenant.QuoteRepo
type ContactRepo = tenant.ContactRepo
type TaskRepo = tenant.TaskRepo
type AssetRepo = tenant.AssetRepo

func NewAgencyRepo(db *gorm.DB, baseLog *logger.Logger) AgencyRepo {
	return tenant.NewAgencyRepo(db, baseLog)
}
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return tenant.NewUserRepo(db, baseLog)
}
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return tenant.NewUserTokenRepo(db, baseLog)
}
func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return tenant.NewClientRepo(db, baseLog)
}
func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return tenant.NewProjectRepo(db, baseLog)
}
func NewLeadRepo(db *gorm.DB, baseLog *logger.Logger) LeadRepo {
	return tenant.NewLeadRepo(db, baseLog)
}
func NewQuoteRepo(db *gorm.DB, baseLog *logger.Logger) QuoteRepo {
	return tenant.NewQuoteRepo(db, baseLog)
}
func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return tenant.NewContactRepo(db, baseLog)
}
func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return tenant.NewTaskRepo(db, baseLog)
}
func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return tenant.NewAssetRepo(db, baseLog)
}
