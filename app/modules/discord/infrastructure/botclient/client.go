// Package botclient wraps the bot's Discord session. It is the only place
// that talks to the Discord REST API directly; callers get domain types and
// nil results for entities Discord no longer knows about.
package botclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	discorddb "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/repositories"
	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

const membersPageSize = 1000

// Client is the bot-side Discord client. User lookups go through the local
// cache table first and only fall back to the REST API on a miss.
type Client struct {
	session *discordgo.Session
	users   discorddb.UserCacheRepository
	logger  *slog.Logger
	metrics *observability.Metrics

	mu            sync.Mutex
	fetchedGuilds map[types.Snowflake][]*discordgo.Member
}

// NewClient builds a client around a fresh bot session. The gateway is not
// opened yet; call Open once the rest of the app is wired.
func NewClient(
	botToken string,
	users discorddb.UserCacheRepository,
	logger *slog.Logger,
	metrics *observability.Metrics,
) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuilds | discordgo.IntentsGuildMembers)
	return &Client{
		session:       session,
		users:         users,
		logger:        logger,
		metrics:       metrics,
		fetchedGuilds: make(map[types.Snowflake][]*discordgo.Member),
	}, nil
}

// Open connects the gateway so the session keeps a live guild state.
func (c *Client) Open() error {
	c.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		c.logger.Info("discord session ready",
			attr.String("username", r.User.Username),
			attr.Int("guild_count", len(r.Guilds)),
		)
	})
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	return nil
}

// Close tears down the gateway connection.
func (c *Client) Close() error {
	return c.session.Close()
}

// isUnknownEntity reports whether err is a Discord API error carrying one of
// the given JSON error codes (unknown user, unknown guild, ...).
func isUnknownEntity(err error, codes ...int) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	for _, code := range codes {
		if restErr.Message.Code == code {
			return true
		}
	}
	return false
}

func (c *Client) countCall(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.DiscordAPICalls.WithLabelValues(kind, outcome).Inc()
}

// ResolveUser fetches a user from the Discord API. A user Discord does not
// know about resolves to (nil, nil).
func (c *Client) ResolveUser(ctx context.Context, userID types.Snowflake) (*discordgo.User, error) {
	user, err := c.session.User(userID.String(), discordgo.WithContext(ctx))
	if isUnknownEntity(err, discordgo.ErrCodeUnknownUser) {
		c.countCall("user", nil)
		return nil, nil
	}
	c.countCall("user", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return user, nil
}

// ResolveGuild fetches a guild the bot is in. Guilds the bot cannot see
// resolve to (nil, nil).
func (c *Client) ResolveGuild(ctx context.Context, guildID types.Snowflake) (*discordgo.Guild, error) {
	if guild, err := c.session.State.Guild(guildID.String()); err == nil {
		return guild, nil
	}
	guild, err := c.session.Guild(guildID.String(), discordgo.WithContext(ctx))
	if isUnknownEntity(err, discordgo.ErrCodeUnknownGuild, discordgo.ErrCodeMissingAccess) {
		c.countCall("guild", nil)
		return nil, nil
	}
	c.countCall("guild", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	return guild, nil
}

// GetGuildInfo returns the public header of a guild, or nil when the bot is
// not in it.
func (c *Client) GetGuildInfo(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error) {
	guild, err := c.ResolveGuild(ctx, guildID)
	if err != nil || guild == nil {
		return nil, err
	}
	info := &discorddomain.GuildInfo{ID: guildID, Name: guild.Name}
	if guild.Icon != "" {
		icon := guild.Icon
		info.Icon = &icon
	}
	return info, nil
}

// GetMember fetches a guild member, or (nil, nil) when the user is not in
// the guild.
func (c *Client) GetMember(ctx context.Context, guildID, userID types.Snowflake) (*discordgo.Member, error) {
	member, err := c.session.GuildMember(guildID.String(), userID.String(), discordgo.WithContext(ctx))
	if isUnknownEntity(err, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser, discordgo.ErrCodeUnknownGuild) {
		c.countCall("member", nil)
		return nil, nil
	}
	c.countCall("member", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s of guild %s: %w", userID, guildID, err)
	}
	return member, nil
}

// CheckUserPresenceInGuild reports whether the user is a member of the guild.
func (c *Client) CheckUserPresenceInGuild(ctx context.Context, guildID, userID types.Snowflake) (bool, error) {
	member, err := c.GetMember(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

// CheckUserPermissionInGuild reports whether the user holds the given
// permission in the guild, either through role permissions, through the
// administrator bit, or by owning the guild.
func (c *Client) CheckUserPermissionInGuild(ctx context.Context, guildID, userID types.Snowflake, permission int64) (bool, error) {
	guild, err := c.ResolveGuild(ctx, guildID)
	if err != nil {
		return false, err
	}
	if guild == nil {
		return false, nil
	}
	if guild.OwnerID == userID.String() {
		return true, nil
	}
	member, err := c.GetMember(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, nil
	}
	rolePerms := make(map[string]int64, len(guild.Roles))
	for _, role := range guild.Roles {
		rolePerms[role.ID] = role.Permissions
	}
	var perms int64
	for _, roleID := range member.Roles {
		perms |= rolePerms[roleID]
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&permission != 0, nil
}

// GetGuildMembers returns every member of a guild. The full member list of a
// guild is fetched from Discord at most once per process and memoized, since
// the scan is expensive for large guilds.
func (c *Client) GetGuildMembers(ctx context.Context, guildID types.Snowflake) ([]*discordgo.Member, error) {
	c.mu.Lock()
	if members, ok := c.fetchedGuilds[guildID]; ok {
		c.mu.Unlock()
		return members, nil
	}
	c.mu.Unlock()

	var members []*discordgo.Member
	after := ""
	for {
		page, err := c.session.GuildMembers(guildID.String(), after, membersPageSize, discordgo.WithContext(ctx))
		c.countCall("guild_members", err)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch members of guild %s: %w", guildID, err)
		}
		members = append(members, page...)
		if len(page) < membersPageSize {
			break
		}
		after = page[len(page)-1].User.ID
	}

	c.mu.Lock()
	c.fetchedGuilds[guildID] = members
	c.mu.Unlock()
	c.logger.Debug("fetched guild members",
		attr.String("guild_id", guildID.String()),
		attr.Int("member_count", len(members)),
	)
	return members, nil
}

// GetRawUserData returns the display data of a user, preferring the local
// cache table over a live API call. Unknown users resolve to (nil, nil).
func (c *Client) GetRawUserData(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
	cached, err := c.users.GetCachedUsers(ctx, []types.Snowflake{userID})
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return &cached[0], nil
	}

	user, err := c.ResolveUser(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	return rawUserFromAPI(user), nil
}

func rawUserFromAPI(user *discordgo.User) *discorddomain.RawUserData {
	id, _ := types.ParseSnowflake(user.ID)
	raw := &discorddomain.RawUserData{
		UserID:   id,
		Username: user.Username,
		IsBot:    user.Bot,
	}
	if user.GlobalName != "" {
		name := user.GlobalName
		raw.GlobalName = &name
	}
	if user.Avatar != "" {
		hash := user.Avatar
		raw.AvatarHash = &hash
	}
	return raw
}

// ResolveRole looks up the display data of a guild role. Roles that no
// longer exist resolve to (nil, nil).
func (c *Client) ResolveRole(ctx context.Context, guildID, roleID types.Snowflake) (*configdomain.RoleDescriptor, error) {
	guild, err := c.ResolveGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, nil
	}
	want := roleID.String()
	for _, role := range guild.Roles {
		if role.ID == want {
			return &configdomain.RoleDescriptor{Name: role.Name, Color: role.Color}, nil
		}
	}
	return nil, nil
}

// ExecuteWebhook posts a prepared message through a Discord webhook.
func (c *Client) ExecuteWebhook(ctx context.Context, webhookID types.Snowflake, webhookToken string, params *discordgo.WebhookParams) error {
	_, err := c.session.WebhookExecute(webhookID.String(), webhookToken, false, params, discordgo.WithContext(ctx))
	c.countCall("webhook", err)
	if err != nil {
		return fmt.Errorf("failed to execute webhook %s: %w", webhookID, err)
	}
	return nil
}
