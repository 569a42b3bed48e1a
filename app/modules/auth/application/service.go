// Package authservice implements the Discord OAuth login flow and session
// token checks.
package authservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	authdomain "github.com/ZRunner/Axobot-API-V2/app/modules/auth/domain"
	authjwt "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/jwt"
	authdb "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/repositories"
	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// CodeExchanger swaps an OAuth authorization code for an access token.
// *oauth2.Config satisfies it.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// UserFetcher resolves the Discord identity behind an OAuth access token.
type UserFetcher func(ctx context.Context, accessToken string) (*discordgo.User, error)

// Config carries the service-level auth settings.
type Config struct {
	DefaultTTL time.Duration
}

// LoginResult is what a successful OAuth callback produces.
type LoginResult struct {
	Token     string                        `json:"token"`
	ExpiresAt time.Time                     `json:"expires_at"`
	User      *authdomain.AuthenticatedUser `json:"user"`
}

// Service runs the login flow: code exchange, identity fetch, JWT issuance
// and session persistence.
type Service struct {
	oauth     CodeExchanger
	fetchUser UserFetcher
	jwt       authjwt.Provider
	tokens    authdb.Repository
	config    Config
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService creates a Service. All collaborators are injected so the
// service can be exercised with fakes.
func NewService(
	oauth CodeExchanger,
	fetchUser UserFetcher,
	jwtProvider authjwt.Provider,
	tokens authdb.Repository,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) *Service {
	return &Service{
		oauth:     oauth,
		fetchUser: fetchUser,
		jwt:       jwtProvider,
		tokens:    tokens,
		config:    config,
		logger:    logger,
		tracer:    tracer,
	}
}

// CompleteLogin exchanges an OAuth authorization code, resolves the Discord
// identity behind it, and issues a stored session token.
func (s *Service) CompleteLogin(ctx context.Context, code string) (*LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "CompleteLogin")
	defer span.End()

	oauthToken, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrCodeExchange, err)
	}

	discordUser, err := s.fetchUser(ctx, oauthToken.AccessToken)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetching oauth identity: %w", err)
	}
	userID, err := types.ParseSnowflake(discordUser.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing oauth user id: %w", err)
	}

	ttl := s.config.DefaultTTL
	if !oauthToken.Expiry.IsZero() {
		// The session must not outlive the Discord token backing it.
		if until := time.Until(oauthToken.Expiry); until < ttl {
			ttl = until
		}
	}

	signed, claims, err := s.jwt.GenerateToken(userID, ttl)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issuing session token: %w", err)
	}

	err = s.tokens.StoreToken(ctx, &authdb.APIToken{
		TokenID:      claims.TokenID,
		UserID:       userID,
		APIToken:     signed,
		DiscordToken: oauthToken.AccessToken,
		ExpiresAt:    claims.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("storing session token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		attr.String("user_id", userID.String()),
	)
	return &LoginResult{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt,
		User:      authenticatedUserFromAPI(discordUser, oauthToken.AccessToken),
	}, nil
}

// CheckToken validates a presented session token against both the JWT
// signature and the stored session row. Revoked or expired sessions fail
// with ErrInvalidSession.
func (s *Service) CheckToken(ctx context.Context, tokenString string) (*authdomain.Claims, string, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	row, err := s.tokens.GetToken(ctx, claims.TokenID)
	if err != nil {
		return nil, "", fmt.Errorf("looking up session: %w", err)
	}
	if row == nil || row.APIToken != tokenString {
		return nil, "", ErrInvalidSession
	}
	return claims, row.DiscordToken, nil
}

// GetAuthenticatedUser resolves the live Discord identity of a session.
func (s *Service) GetAuthenticatedUser(ctx context.Context, discordToken string) (*authdomain.AuthenticatedUser, error) {
	discordUser, err := s.fetchUser(ctx, discordToken)
	if err != nil {
		return nil, fmt.Errorf("fetching oauth identity: %w", err)
	}
	return authenticatedUserFromAPI(discordUser, discordToken), nil
}

// Logout revokes one stored session.
func (s *Service) Logout(ctx context.Context, tokenID string) error {
	return s.tokens.DeleteToken(ctx, tokenID)
}

// PurgeExpiredTokens removes stale session rows. Meant to be called
// periodically from the module's run loop.
func (s *Service) PurgeExpiredTokens(ctx context.Context) error {
	purged, err := s.tokens.DeleteExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("purging expired tokens: %w", err)
	}
	if purged > 0 {
		s.logger.InfoContext(ctx, "purged expired sessions", attr.Int("count", purged))
	}
	return nil
}

func authenticatedUserFromAPI(user *discordgo.User, discordToken string) *authdomain.AuthenticatedUser {
	userID, _ := types.ParseSnowflake(user.ID)
	var avatarHash *string
	if user.Avatar != "" {
		hash := user.Avatar
		avatarHash = &hash
	}
	var globalName *string
	if user.GlobalName != "" {
		name := user.GlobalName
		globalName = &name
	}
	return &authdomain.AuthenticatedUser{
		UserID:       userID,
		Username:     user.Username,
		GlobalName:   globalName,
		Avatar:       discorddomain.AvatarURLFromHash(avatarHash, userID),
		DiscordToken: discordToken,
	}
}
