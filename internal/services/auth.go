package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/observability"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/ctxutil"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type JWTClaims struct {
	Role     string `json:"role"`
	AgencyID string `json:"agency_id,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name"`
	AgencyName     string `json:"agency_name"`
	AgencyIndustry string `json:"agency_industry"`
}

// AuthResult carries both tokens plus the user they belong to.
type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	agencyRepo    repos.AgencyRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	agencyRepo repos.AgencyRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		agencyRepo:    agencyRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// Register bootstraps a new agency: it creates the agency row and its
// first user as agency_admin in one transaction.
func (as *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	const op = "auth.Register"

	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation(op, "a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, apperr.Validation(op, "password must be at least 8 characters")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperr.Validation(op, "full_name is required")
	}
	if strings.TrimSpace(in.AgencyName) == "" {
		return nil, apperr.Validation(op, "agency_name is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "hash password", err)
	}

	var result *AuthResult
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		exists, err := as.userRepo.EmailExists(dbc, email)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if exists {
			return apperr.Conflict(op, "email is already registered")
		}

		slug := slugify(in.AgencyName)
		if slug == "" {
			slug = uuid.New().String()[:8]
		}
		if existing, err := as.agencyRepo.GetBySlug(dbc, slug); err != nil {
			return apperr.MapDB(op, err)
		} else if existing != nil {
			slug = slug + "-" + uuid.New().String()[:8]
		}

		agency := &domain.Agency{
			ID:       uuid.New(),
			Name:     strings.TrimSpace(in.AgencyName),
			Slug:     slug,
			Industry: strings.TrimSpace(in.AgencyIndustry),
		}
		if err := as.agencyRepo.Create(dbc, agency); err != nil {
			return apperr.MapDB(op, err)
		}

		user := &domain.User{
			ID:       uuid.New(),
			Email:    email,
			Password: string(hashed),
			FullName: strings.TrimSpace(in.FullName),
			Role:     domain.RoleAgencyAdmin,
			AgencyID: &agency.ID,
		}
		if err := as.userRepo.Create(dbc, user); err != nil {
			return apperr.MapDB(op, err)
		}

		res, err := as.issueTokens(dbc, user)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "auth.Login"

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation(op, "email and password are required")
	}

	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if user == nil {
		observability.Current().IncAuthAttempt("login", "rejected")
		return nil, apperr.PermissionDenied(op, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.Current().IncAuthAttempt("login", "rejected")
		return nil, apperr.PermissionDenied(op, "invalid credentials")
	}
	observability.Current().IncAuthAttempt("login", "accepted")

	var result *AuthResult
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userTokenRepo.DeleteExpired(dbc, time.Now()); err != nil {
			return apperr.MapDB(op, err)
		}
		res, err := as.issueTokens(dbc, user)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	const op = "auth.Refresh"

	if refreshToken == "" {
		return nil, apperr.Validation(op, "refresh_token is required")
	}

	var result *AuthResult
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := as.userTokenRepo.GetByRefreshToken(dbc, refreshToken)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if existing == nil {
			return apperr.PermissionDenied(op, "unknown refresh token")
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if _, err := as.userTokenRepo.DeleteByUserID(dbc, existing.UserID); err != nil {
				return apperr.MapDB(op, err)
			}
			return apperr.PermissionDenied(op, "refresh token expired")
		}

		user, err := as.userRepo.GetByID(dbc, existing.UserID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if user == nil {
			return apperr.PermissionDenied(op, "user no longer exists")
		}

		if _, err := as.userTokenRepo.DeleteByUserID(dbc, existing.UserID); err != nil {
			return apperr.MapDB(op, err)
		}
		res, err := as.issueTokens(dbc, user)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

func (as *authService) Logout(ctx context.Context) error {
	const op = "auth.Logout"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return err
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userTokenRepo.DeleteByUserID(dbc, rd.UserID); err != nil {
			return apperr.MapDB(op, err)
		}
		return nil
	})
}

// issueTokens runs inside the caller's transaction.
func (as *authService) issueTokens(dbc dbctx.Context, user *domain.User) (*AuthResult, error) {
	const op = "auth.issueTokens"

	access, err := as.generateAccessToken(user)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "sign access token", err)
	}
	refresh := uuid.New().String()
	token := &domain.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if err := as.userTokenRepo.Create(dbc, token); err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (as *authService) generateAccessToken(user *domain.User) (string, error) {
	claims := JWTClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if user.AgencyID != nil {
		claims.AgencyID = user.AgencyID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "auth.SetContextFromToken"

	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apperr.Wrap(apperr.KindPermissionDenied, op, "parse token", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apperr.PermissionDenied(op, "invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperr.PermissionDenied(op, "invalid subject in token")
	}
	rd := &ctxutil.RequestData{
		UserID: userID,
		Role:   domain.Role(claims.Role),
	}
	if claims.AgencyID != "" {
		agencyID, err := uuid.Parse(claims.AgencyID)
		if err != nil {
			return ctx, apperr.PermissionDenied(op, "invalid agency in token")
		}
		rd.AgencyID = &agencyID
	}
	if !rd.Role.Valid() {
		return ctx, apperr.PermissionDenied(op, "unknown role in token")
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }
