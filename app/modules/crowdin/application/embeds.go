package crowdinservice

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	crowdindomain "github.com/ZRunner/Axobot-API-V2/app/modules/crowdin/domain"
)

// embedColor is the green Crowdin accent used on every relayed embed.
const embedColor = 0x66bb6a

// maxStringPreview caps how much of a source string is quoted in an embed.
const maxStringPreview = 200

func footerFromUser(user *crowdindomain.User) *discordgo.MessageEmbedFooter {
	if user == nil {
		return nil
	}
	return &discordgo.MessageEmbedFooter{
		Text:    "Translated by " + user.Username,
		IconURL: user.AvatarURL,
	}
}

func authorFromProject(project crowdindomain.Project) *discordgo.MessageEmbedAuthor {
	return &discordgo.MessageEmbedAuthor{
		Name: project.Name,
		URL:  project.URL,
	}
}

func previewText(text string) string {
	if len(text) < maxStringPreview {
		return text
	}
	return text[:maxStringPreview] + "..."
}

// buildFileEmbed renders one file-level event.
func buildFileEmbed(event *crowdindomain.Event) *discordgo.MessageEmbed {
	file := event.File
	switch event.Event {
	case crowdindomain.EventFileAdded:
		return &discordgo.MessageEmbed{
			Title:       "New file added",
			Description: fmt.Sprintf("File: %s\n\n[Go to project](%s)", file.Path, file.Project.URL),
			Color:       embedColor,
			Footer:      footerFromUser(event.User),
			Author:      authorFromProject(file.Project),
		}
	case crowdindomain.EventFileTranslated:
		language := ""
		if event.TargetLanguage != nil {
			language = event.TargetLanguage.Name
		}
		return &discordgo.MessageEmbed{
			Title:       "File fully translated",
			Description: fmt.Sprintf("File: %s\nLanguage: %s\n\n[Go to project](%s)", file.Path, language, file.Project.URL),
			Color:       embedColor,
			Author:      authorFromProject(file.Project),
		}
	case crowdindomain.EventFileUpdated:
		return &discordgo.MessageEmbed{
			Title:       "File updated",
			Description: fmt.Sprintf("File: %s\n\n[Go to project](%s)", file.Path, file.Project.URL),
			Color:       embedColor,
			Footer:      footerFromUser(event.User),
			Author:      authorFromProject(file.Project),
		}
	}
	return nil
}

// buildStringEmbed renders one string-level event.
func buildStringEmbed(event *crowdindomain.Event) *discordgo.MessageEmbed {
	str := event.String
	var title string
	switch event.Event {
	case crowdindomain.EventStringAdded:
		title = "Source string added"
	case crowdindomain.EventStringUpdated:
		title = "Source string updated"
	case crowdindomain.EventStringDeleted:
		title = "Source string deleted"
	default:
		return nil
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("File: %s\nKey: %s\n\n[Go to project](%s)", str.File.Path, str.Key, str.URL),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Text", Value: previewText(str.Text)},
		},
		Color:  embedColor,
		Footer: footerFromUser(event.User),
		Author: authorFromProject(str.Project),
	}
}
