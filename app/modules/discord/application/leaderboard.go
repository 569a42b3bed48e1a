package discordservice

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	"github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain/xp"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

// enrichmentConcurrency caps the number of user lookups in flight for one
// transform. Most lookups hit the cache table, so a small bound is enough.
const enrichmentConcurrency = 10

// TransformLeaderboard enriches raw (user, xp) rows into ranked entries.
// Rows are assumed already sorted by descending XP; output order matches
// input order. The ranking of the row at index i is rankOffset + i,
// zero-based. User lookups for distinct rows run concurrently; an unknown
// user yields a nil username and a default avatar, but any unexpected
// lookup error aborts the whole transform.
func (s *Service) TransformLeaderboard(ctx context.Context, rows []discorddomain.LeaderboardRow, rankOffset int, useLegacy bool) ([]discorddomain.LeaderboardEntry, error) {
	curve := xp.ForLegacy(useLegacy)
	curveName := "general"
	if useLegacy {
		curveName = "mee6"
	}
	start := time.Now()
	defer func() {
		s.metrics.LeaderboardTransform.WithLabelValues(curveName).Observe(time.Since(start).Seconds())
	}()

	entries := make([]discorddomain.LeaderboardEntry, len(rows))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(enrichmentConcurrency)
	for i, row := range rows {
		group.Go(func() error {
			level := curve.LevelFromXP(row.XP)
			entry := discorddomain.LeaderboardEntry{
				Ranking:          rankOffset + i,
				UserID:           row.UserID,
				XP:               row.XP,
				Level:            level,
				XPToCurrentLevel: curve.XPForLevel(level),
				XPToNextLevel:    curve.XPForLevel(level + 1),
			}
			user, err := s.users.GetRawUserData(ctx, row.UserID)
			if err != nil {
				return fmt.Errorf("enriching user %s: %w", row.UserID, err)
			}
			entry.Username = user.DisplayName()
			if user != nil {
				entry.Avatar = discorddomain.AvatarURLFromHash(user.AvatarHash, row.UserID)
			} else {
				entry.Avatar = discorddomain.AvatarURLFromHash(nil, row.UserID)
			}
			entries[i] = entry
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "leaderboard page transformed",
		attr.Int("rows", len(rows)),
		attr.String("curve", curveName),
	)
	return entries, nil
}
