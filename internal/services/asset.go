package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type AssetCreateInput struct {
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	StorageKey string          `json:"storage_key"`
	SizeBytes  int64           `json:"size_bytes"`
	Metadata   json.RawMessage `json:"metadata"`
	AgencyID   *uuid.UUID      `json:"agency_id"`
}

type AssetUpdateInput struct {
	Name     *string         `json:"name"`
	Kind     *string         `json:"kind"`
	Metadata json.RawMessage `json:"metadata"`
	AgencyID *uuid.UUID      `json:"agency_id"`
}

type AssetService interface {
	Create(ctx context.Context, in AssetCreateInput) (*domain.Asset, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Asset, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Asset, error)
	Update(ctx context.Context, id uuid.UUID, in AssetUpdateInput) (*domain.Asset, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type assetService struct {
	db        *gorm.DB
	log       *logger.Logger
	assetRepo repos.AssetRepo
}

func NewAssetService(db *gorm.DB, log *logger.Logger, assetRepo repos.AssetRepo) AssetService {
	return &assetService{
		db:        db,
		log:       log.With("service", "AssetService"),
		assetRepo: assetRepo,
	}
}

func (s *assetService) Create(ctx context.Context, in AssetCreateInput) (*domain.Asset, error) {
	const op = "asset.Create"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageAssets, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation(op, "name is required")
	}
	if in.SizeBytes < 0 {
		return nil, apperr.Validation(op, "size_bytes cannot be negative")
	}
	if len(in.Metadata) > 0 && !json.Valid(in.Metadata) {
		return nil, apperr.Validation(op, "metadata must be valid JSON")
	}

	asset := &domain.Asset{
		ID:         uuid.New(),
		AgencyID:   agencyID,
		Name:       strings.TrimSpace(in.Name),
		Kind:       strings.TrimSpace(in.Kind),
		StorageKey: strings.TrimSpace(in.StorageKey),
		SizeBytes:  in.SizeBytes,
		UploadedBy: rd.UserID,
		Metadata:   datatypes.JSON(in.Metadata),
	}
	if err := s.assetRepo.Create(dbctx.Context{Ctx: ctx}, asset); err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return asset, nil
}

func (s *assetService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Asset, error) {
	const op = "asset.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	asset, err := s.assetRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if asset == nil {
		return nil, apperr.NotFound(op, "asset not found")
	}
	return asset, nil
}

func (s *assetService) List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Asset, error) {
	const op = "asset.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.assetRepo.List(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *assetService) Update(ctx context.Context, id uuid.UUID, in AssetUpdateInput) (*domain.Asset, error) {
	const op = "asset.Update"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageAssets, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation(op, "name cannot be empty")
	}
	if len(in.Metadata) > 0 && !json.Valid(in.Metadata) {
		return nil, apperr.Validation(op, "metadata must be valid JSON")
	}

	var updated *domain.Asset
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		asset, err := s.assetRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if asset == nil {
			return apperr.NotFound(op, "asset not found")
		}
		if in.Name != nil {
			asset.Name = strings.TrimSpace(*in.Name)
		}
		if in.Kind != nil {
			asset.Kind = strings.TrimSpace(*in.Kind)
		}
		if len(in.Metadata) > 0 {
			asset.Metadata = datatypes.JSON(in.Metadata)
		}
		if _, err := s.assetRepo.Update(dbc, agencyID, asset); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = asset
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *assetService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "asset.Delete"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return err
	}
	if err := requireCapability(rd, authz.CapManageAssets, op); err != nil {
		return err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return err
	}
	affected, err := s.assetRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "asset not found")
	}
	return nil
}
