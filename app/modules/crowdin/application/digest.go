package crowdinservice

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	crowdindomain "github.com/ZRunner/Axobot-API-V2/app/modules/crowdin/domain"
)

// digestKey groups batched string events by what happened and where.
type digestKey struct {
	kind string
	file string
}

// buildBatchDigest folds a batch of string events into one summary embed.
// An added string that later shows up as deleted (or the reverse) within
// the same batch collapses into a single update.
func buildBatchDigest(events []crowdindomain.Event) *discordgo.MessageEmbed {
	sets := make(map[digestKey]map[string]struct{})
	var order []digestKey

	get := func(kind, file string) map[string]struct{} {
		key := digestKey{kind: kind, file: file}
		set, ok := sets[key]
		if !ok {
			set = make(map[string]struct{})
			sets[key] = set
			order = append(order, key)
		}
		return set
	}

	for _, event := range events {
		file := event.String.File.Path
		stringID := event.String.Identifier
		switch event.Event {
		case crowdindomain.EventStringAdded:
			deleted := get("deleted", file)
			if _, ok := deleted[stringID]; ok {
				delete(deleted, stringID)
				get("updated", file)[stringID] = struct{}{}
			} else {
				get("added", file)[stringID] = struct{}{}
			}
		case crowdindomain.EventStringUpdated:
			get("updated", file)[stringID] = struct{}{}
		case crowdindomain.EventStringDeleted:
			added := get("added", file)
			if _, ok := added[stringID]; ok {
				delete(added, stringID)
				get("updated", file)[stringID] = struct{}{}
			} else {
				get("deleted", file)[stringID] = struct{}{}
			}
		}
	}

	project := events[0].String.Project
	var text strings.Builder
	for _, key := range order {
		count := len(sets[key])
		if count == 0 {
			continue
		}
		text.WriteString(fmt.Sprintf("%d %s %s in %s\n", count, pluralizeString(count), key.kind, key.file))
	}
	text.WriteString(fmt.Sprintf("\n[Go to project](%s)", project.URL))

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d %s edited", len(events), pluralizeString(len(events))),
		Description: text.String(),
		Color:       embedColor,
		Footer:      footerFromUser(events[0].User),
		Author:      authorFromProject(project),
	}
}

func pluralizeString(count int) string {
	if count == 1 {
		return "string"
	}
	return "strings"
}
