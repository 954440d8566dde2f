// Package services contains application services for the flashly client.
// This file defines the authentication service: register, login, logout and
// the startup auth gate that decides whether a session is still valid.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/repositories/metadata"
	"github.com/flashly/flashly/internal/client/repositories/studysets"
	"github.com/flashly/flashly/internal/common"
	"github.com/flashly/flashly/internal/dbx"
	"github.com/flashly/flashly/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	metaProfileID       = "profile_id"
	metaProfileUsername = "profile_username"
	metaProfileEmail    = "profile_email"
)

// AuthStatus is the outcome of the auth gate.
type AuthStatus int

const (
	Unauthenticated AuthStatus = iota
	Authenticated
)

func (s AuthStatus) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// AuthResult is returned by Initialize. Offline is set when the server could
// not be reached and the profile comes from the local cache.
type AuthResult struct {
	Status  AuthStatus
	Profile models.Profile
	Offline bool
}

func (r AuthResult) Authenticated() bool { return r.Status == Authenticated }

// AuthService defines authentication operations for the CLI.
//
// Initialize must run before any protected operation; it either restores a
// session from the stored token or reports Unauthenticated.
type AuthService interface {
	Initialize(ctx context.Context) (AuthResult, error)
	Register(ctx context.Context, username, email string, password []byte) (models.Profile, error)
	Login(ctx context.Context, email string, password []byte) (models.Profile, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	tokens *client.TokenHolder
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the API client, the
// token holder the client reads from, and the local DB.
func NewAuthService(c client.Client, tokens *client.TokenHolder, db *sql.DB, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{client: c, tokens: tokens, db: db, logger: logger, now: time.Now}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// tokenExpired reads the exp claim without verifying the signature. Tokens
// that are not JWTs are left for the server to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

func (a *authService) Initialize(ctx context.Context) (AuthResult, error) {
	repo := a.getMetadataRepo()

	token, err := repo.Get(ctx, common.AuthTokenMetadataKey)
	if errors.Is(err, common.ErrorNotFound) || (err == nil && token == "") {
		return AuthResult{Status: Unauthenticated}, nil
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("read stored token: %w", err)
	}

	if tokenExpired(token, a.now()) {
		a.logger.Info(ctx, "stored token expired")
		return AuthResult{Status: Unauthenticated}, a.forget(ctx)
	}

	a.tokens.SetAccessToken(token)

	profile, err := a.client.Profile(ctx)
	switch {
	case err == nil:
		if err := a.saveProfile(ctx, token, profile); err != nil {
			return AuthResult{}, err
		}
		return AuthResult{Status: Authenticated, Profile: profile}, nil

	case errors.Is(err, client.ErrUnauthorized):
		a.logger.Info(ctx, "stored token rejected by server")
		return AuthResult{Status: Unauthenticated}, a.forget(ctx)

	case errors.Is(err, client.ErrTransport):
		cached, cerr := a.cachedProfile(ctx)
		if cerr != nil {
			return AuthResult{}, cerr
		}
		a.logger.Warn(ctx, "server unreachable, continuing offline", "error", err)
		return AuthResult{Status: Authenticated, Profile: cached, Offline: true}, nil

	default:
		return AuthResult{}, fmt.Errorf("verify session: %w", err)
	}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (models.Profile, error) {
	defer common.WipeByteArray(password)

	p, err := a.client.Register(ctx, models.Credentials{Username: username, Email: email, Password: string(password)})
	if err != nil {
		return models.Profile{}, err
	}
	a.logger.Info(ctx, "account registered", "username", p.Username)
	return p, nil
}

// Login authenticates against the server and stores the token and profile.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Profile, error) {
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return models.Profile{}, fmt.Errorf("login error: %w", err)
	}
	if tokenExpired(token, a.now()) {
		return models.Profile{}, fmt.Errorf("login error: %w", common.ErrTokenExpired)
	}

	a.tokens.SetAccessToken(token)
	profile, err := a.client.Profile(ctx)
	if err != nil {
		a.tokens.SetAccessToken("")
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	if err := a.saveProfile(ctx, token, profile); err != nil {
		return models.Profile{}, fmt.Errorf("token saving error: %w", err)
	}
	return profile, nil
}

// Logout tells the server (best effort) and always clears local state,
// including the study set cache.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "remote logout failed", "error", err)
	}
	return a.forget(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) saveProfile(ctx context.Context, token string, p models.Profile) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).SetMany(ctx, map[string]string{
			common.AuthTokenMetadataKey: token,
			metaProfileID:               string(p.ID),
			metaProfileUsername:         p.Username,
			metaProfileEmail:            p.Email,
		})
	})
}

func (a *authService) cachedProfile(ctx context.Context) (models.Profile, error) {
	all, err := a.getMetadataRepo().List(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		ID:       models.ServerID(all[metaProfileID]),
		Username: all[metaProfileUsername],
		Email:    all[metaProfileEmail],
	}, nil
}

// forget drops the token, the cached profile and every cached study set.
func (a *authService) forget(ctx context.Context) error {
	a.tokens.SetAccessToken("")
	if err := a.getMetadataRepo().Clear(ctx); err != nil {
		return err
	}
	return studysets.NewSQLiteRepository(a.db).Clear(ctx)
}
