package botclient

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

const oauthGuildsPageSize = 200

// Bearer sessions act on behalf of an OAuth user, not the bot. They are
// throwaway REST-only sessions and never touch the gateway.

// GetUserFromToken fetches the identity behind an OAuth access token.
func GetUserFromToken(ctx context.Context, accessToken string) (*discordgo.User, error) {
	session, err := discordgo.New("Bearer " + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bearer session: %w", err)
	}
	user, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oauth user: %w", err)
	}
	return user, nil
}

// GetGuildsFromToken lists the guilds of the user behind an OAuth access
// token, following pagination until Discord runs out of pages.
func GetGuildsFromToken(ctx context.Context, accessToken string) ([]discorddomain.OauthGuild, error) {
	session, err := discordgo.New("Bearer " + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bearer session: %w", err)
	}

	var guilds []discorddomain.OauthGuild
	after := ""
	for {
		page, err := session.UserGuilds(oauthGuildsPageSize, "", after, false, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch oauth guilds: %w", err)
		}
		for _, g := range page {
			guilds = append(guilds, oauthGuildFromAPI(g))
		}
		if len(page) < oauthGuildsPageSize {
			return guilds, nil
		}
		after = page[len(page)-1].ID
	}
}

func oauthGuildFromAPI(g *discordgo.UserGuild) discorddomain.OauthGuild {
	id, _ := types.ParseSnowflake(g.ID)
	guild := discorddomain.OauthGuild{
		ID:          id,
		Name:        g.Name,
		IsOwner:     g.Owner,
		Permissions: g.Permissions,
		IsAdmin:     g.Owner || g.Permissions&discordgo.PermissionAdministrator != 0,
	}
	if g.Icon != "" {
		icon := g.Icon
		guild.Icon = &icon
	}
	if len(g.Features) > 0 {
		guild.Features = make([]string, len(g.Features))
		for i, f := range g.Features {
			guild.Features[i] = string(f)
		}
	}
	return guild
}
