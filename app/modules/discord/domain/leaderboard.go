// Package discorddomain holds the wire and domain types of the discord
// module: leaderboard rows and entries, raw user data, avatar derivation.
package discorddomain

import (
	"fmt"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// LeaderboardRow is a raw (user, xp) pair as stored, before enrichment.
// Rows come out of the store already sorted by descending XP.
type LeaderboardRow struct {
	UserID types.Snowflake `json:"user_id"`
	XP     int64           `json:"xp"`
}

// LeaderboardEntry is one enriched, ranked row of a leaderboard page. It
// only lives for the duration of a response.
type LeaderboardEntry struct {
	Ranking          int             `json:"ranking"`
	UserID           types.Snowflake `json:"user_id"`
	XP               int64           `json:"xp"`
	Level            int64           `json:"level"`
	XPToCurrentLevel int64           `json:"xp_to_current_level"`
	XPToNextLevel    int64           `json:"xp_to_next_level"`
	Username         *string         `json:"username"`
	Avatar           string          `json:"avatar"`
}

// RawUserData is the minimal user record used for enrichment, either from
// the local cache table or straight from the Discord API.
type RawUserData struct {
	UserID     types.Snowflake `json:"user_id"`
	Username   string          `json:"username"`
	GlobalName *string         `json:"global_name"`
	AvatarHash *string         `json:"avatar_hash"`
	IsBot      bool            `json:"is_bot"`
}

// DisplayName prefers the global display name over the username.
func (u *RawUserData) DisplayName() *string {
	if u == nil {
		return nil
	}
	if u.GlobalName != nil && *u.GlobalName != "" {
		return u.GlobalName
	}
	name := u.Username
	return &name
}

// AvatarURLFromHash builds the CDN avatar URL for a user. A nil hash falls
// back to one of the six default avatars, picked deterministically from the
// snowflake: (id >> 22) % 6.
func AvatarURLFromHash(hash *string, userID types.Snowflake) string {
	if hash == nil {
		index := (uint64(userID) >> 22) % 6
		return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", index)
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.webp", userID, *hash)
}

// GuildInfo is the public guild header attached to guild leaderboards.
type GuildInfo struct {
	ID   types.Snowflake `json:"id"`
	Name string          `json:"name"`
	Icon *string         `json:"icon"`
}

// LeaderboardPage is one paginated leaderboard response. Guild is nil for
// the global leaderboard.
type LeaderboardPage struct {
	Guild        *GuildInfo         `json:"guild,omitempty"`
	Players      []LeaderboardEntry `json:"players"`
	PlayersCount int                `json:"players_count"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
}
