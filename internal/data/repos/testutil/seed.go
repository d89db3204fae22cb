package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
)

func SeedAgency(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Agency {
	tb.Helper()
	a := &domain.Agency{
		ID:       uuid.New(),
		Name:     name,
		Slug:     fmt.Sprintf("%s-%s", name, uuid.New().String()[:8]),
		Industry: "marketing",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed agency: %v", err)
	}
	return a
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID *uuid.UUID, email string, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		FullName: "Seed User",
		Role:     role,
		AgencyID: agencyID,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID uuid.UUID, name string) *domain.Client {
	tb.Helper()
	c := &domain.Client{
		ID:       uuid.New(),
		AgencyID: agencyID,
		Name:     name,
		Status:   domain.ClientStatusActive,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID, clientID, createdBy uuid.UUID, name string) *domain.Project {
	tb.Helper()
	p := &domain.Project{
		ID:        uuid.New(),
		AgencyID:  agencyID,
		ClientID:  clientID,
		Name:      name,
		Status:    domain.ProjectStatusActive,
		Priority:  domain.PriorityMedium,
		CreatedBy: createdBy,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedLead(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID uuid.UUID, name string) *domain.Lead {
	tb.Helper()
	l := &domain.Lead{
		ID:       uuid.New(),
		AgencyID: agencyID,
		Name:     name,
		Status:   domain.LeadStatusNew,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lead: %v", err)
	}
	return l
}

func SeedTask(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID, createdBy uuid.UUID, title string) *domain.Task {
	tb.Helper()
	task := &domain.Task{
		ID:        uuid.New(),
		AgencyID:  agencyID,
		CreatedBy: createdBy,
		Title:     title,
		Status:    domain.TaskStatusTodo,
		Priority:  domain.PriorityMedium,
	}
	if err := tx.WithContext(ctx).Create(task).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return task
}

func SeedQuote(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID uuid.UUID, title string) *domain.Quote {
	tb.Helper()
	q := &domain.Quote{
		ID:       uuid.New(),
		AgencyID: agencyID,
		Title:    title,
		Amount:   1000,
		Status:   domain.QuoteStatusDraft,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quote: %v", err)
	}
	return q
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, agencyID uuid.UUID, name string) *domain.Contact {
	tb.Helper()
	c := &domain.Contact{
		ID:       uuid.New(),
		AgencyID: agencyID,
		Name:     name,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
