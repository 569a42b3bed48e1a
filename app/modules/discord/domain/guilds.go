package discorddomain

import "github.com/ZRunner/Axobot-API-V2/pkg/types"

// OauthGuild is one guild of the authenticated user, as reported by the
// Discord OAuth "users/@me/guilds" endpoint.
type OauthGuild struct {
	ID          types.Snowflake `json:"id"`
	Name        string          `json:"name"`
	Icon        *string         `json:"icon"`
	IsOwner     bool            `json:"owner"`
	IsAdmin     bool            `json:"is_admin"`
	Permissions int64           `json:"permissions"`
	Features    []string        `json:"features"`
}
