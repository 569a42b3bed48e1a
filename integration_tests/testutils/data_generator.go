package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	discorddb "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/repositories"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// TestDataGenerator produces realistic rows for the repository tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator, seeded for reproducibility when
// a seed is given.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Snowflake returns a random Discord-shaped identifier.
func (g *TestDataGenerator) Snowflake() types.Snowflake {
	// Real snowflakes have the epoch in the upper bits; any large uint64
	// exercises the same storage paths.
	return types.Snowflake(g.faker.Uint64() | 1<<40)
}

// CachedUser returns a random users_cache row.
func (g *TestDataGenerator) CachedUser() discorddb.CachedUser {
	globalName := g.faker.Name()
	avatar := g.faker.LetterN(32)
	return discorddb.CachedUser{
		UserID:     g.Snowflake(),
		Username:   g.faker.Username(),
		GlobalName: &globalName,
		AvatarHash: &avatar,
		IsBot:      false,
	}
}

// GlobalXPRow returns a random global leaderboard row.
func (g *TestDataGenerator) GlobalXPRow() discorddb.GlobalXP {
	return discorddb.GlobalXP{
		UserID: g.Snowflake(),
		XP:     int64(g.faker.IntRange(1, 5_000_000)),
	}
}

// GuildXPRow returns a random guild leaderboard row.
func (g *TestDataGenerator) GuildXPRow(guildID types.Snowflake) discorddb.GuildXP {
	return discorddb.GuildXP{
		GuildID: guildID,
		UserID:  g.Snowflake(),
		XP:      int64(g.faker.IntRange(1, 5_000_000)),
	}
}
