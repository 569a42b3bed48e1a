package authjwt

import (
	"time"

	authdomain "github.com/ZRunner/Axobot-API-V2/app/modules/auth/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID types.Snowflake, ttl time.Duration) (token string, claims *authdomain.Claims, err error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
