package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
	"github.com/dmitrijs2005/tixgo/internal/client/tokenstore"
	"github.com/dmitrijs2005/tixgo/internal/common"
	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService defines the identity operations.
//
// Contract:
//   - Login: authenticate and store the returned token, if any.
//   - Register: create an account; the session is untouched.
//   - Me: fetch the current profile and cache it next to the token.
//   - Logout: drop the token and the cached profile. No request is made.
//   - TokenInfo: decode the token claims for display; nothing is verified.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Me(ctx context.Context) (*models.User, error)
	CachedUser(ctx context.Context) (*models.User, bool)
	Health(ctx context.Context) (*models.Health, error)
	Logout(ctx context.Context)
	IsAuthenticated(ctx context.Context) bool
	TokenInfo(ctx context.Context) (*models.TokenInfo, error)
}

type authService struct {
	api       API
	store     tokenstore.Store
	endpoints config.Endpoints
	userKey   string
	logger    logging.Logger
}

func NewAuthService(api API, store tokenstore.Store, endpoints config.Endpoints, userKey string, logger logging.Logger) AuthService {
	return &authService{
		api:       api,
		store:     store,
		endpoints: endpoints,
		userKey:   userKey,
		logger:    logger.With("component", "auth"),
	}
}

// Login posts the credentials. A 2xx body that cannot be decoded yields an
// empty response rather than an error, so the caller reports "no token".
func (a *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body, err := a.api.Request(ctx, http.MethodPost, a.endpoints.Login, models.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	resp := &models.LoginResponse{}
	if err := body.Decode(resp); err != nil {
		a.logger.Warn(ctx, "unexpected login response", "body", body.Kind, "error", err)
		return &models.LoginResponse{}, nil
	}

	if token := resp.Token(); token != "" {
		a.store.Set(ctx, token)
		a.logger.Info(ctx, "logged in", "username", username, "token", common.TokenPreview(token))
	}
	return resp, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if _, err := a.api.Request(ctx, http.MethodPost, a.endpoints.Register, req); err != nil {
		return err
	}
	a.logger.Info(ctx, "account registered", "username", req.Username)
	return nil
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	body, err := a.api.Request(ctx, http.MethodGet, a.endpoints.Me, nil)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	if err := body.Decode(user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if raw, err := json.Marshal(user); err == nil {
		a.store.Save(ctx, a.userKey, raw)
	}
	return user, nil
}

// CachedUser returns the profile saved by the last successful Me call,
// as long as a token is still present.
func (a *authService) CachedUser(ctx context.Context) (*models.User, bool) {
	if !a.store.IsAuthenticated(ctx) {
		return nil, false
	}
	raw, ok := a.store.Load(ctx, a.userKey)
	if !ok {
		return nil, false
	}
	user := &models.User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, false
	}
	return user, true
}

func (a *authService) Health(ctx context.Context) (*models.Health, error) {
	body, err := a.api.Request(ctx, http.MethodGet, a.endpoints.Health, nil)
	if err != nil {
		return nil, err
	}
	h := &models.Health{}
	if err := body.Decode(h); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return h, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.store.Reset(ctx, a.userKey)
	a.logger.Info(ctx, "logged out")
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.store.IsAuthenticated(ctx)
}

// TokenInfo reads sub, role, iat and exp from a JWT session token without
// checking its signature. Tokens that are not JWTs come back Opaque.
func (a *authService) TokenInfo(ctx context.Context) (*models.TokenInfo, error) {
	token, ok := a.store.Get(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	info := &models.TokenInfo{Preview: common.TokenPreview(token)}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		info.Opaque = true
		return info, nil
	}

	info.Subject, _ = claims.GetSubject()
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
