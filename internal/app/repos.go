package app

import (
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type Repos struct {
	Agency    repos.AgencyRepo
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Client    repos.ClientRepo
	Project   repos.ProjectRepo
	Lead      repos.LeadRepo
	Quote     repos.QuoteRepo
	Contact   repos.ContactRepo
	Task      repos.TaskRepo
	Asset     repos.AssetRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Agency:    repos.NewAgencyRepo(db, log),
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Client:    repos.NewClientRepo(db, log),
		Project:   repos.NewProjectRepo(db, log),
		Lead:      repos.NewLeadRepo(db, log),
		Quote:     repos.NewQuoteRepo(db, log),
		Contact:   repos.NewContactRepo(db, log),
		Task:      repos.NewTaskRepo(db, log),
		Asset:     repos.NewAssetRepo(db, log),
	}
}
