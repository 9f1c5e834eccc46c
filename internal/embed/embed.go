// Package embed renders the bot's Discord embeds.
package embed

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/level"
)

// Rates are the XP amounts advertised on the verification message
type Rates struct {
	MessageMin     int64
	MessageMax     int64
	VoicePerMinute int64
	ReactionGiven  int64
	DailyBonus     int64
}

// Renderer builds embeds with locale-aware number formatting
type Renderer struct {
	printer     *message.Printer
	title       cases.Caser
	verifyEmoji string
	rates       Rates
}

// NewRenderer creates a renderer for the given verification emoji and rates
func NewRenderer(verifyEmoji string, rates Rates) *Renderer {
	return &Renderer{
		printer:     message.NewPrinter(language.English),
		title:       cases.Title(language.English),
		verifyEmoji: verifyEmoji,
		rates:       rates,
	}
}

func (r *Renderer) number(n int64) string {
	return r.printer.Sprintf("%d", n)
}

// Verification renders the verification message with the member counts
func (r *Renderer) Verification(total, verified int) *discordgo.MessageEmbed {
	desc := r.printer.Sprintf("🏠 **Total Members:** %d\n✅ **Verified:** %d\n\n**React with %s below to verify and start earning XP!**",
		total, verified, r.verifyEmoji)

	system := r.printer.Sprintf("Earn XP from:\n• 📝 Chat messages (%d-%d XP)\n• 🎤 Voice activity (%d XP/min)\n• 👍 Giving reactions (%d XP)\n• 🎁 Daily bonuses (%d XP)",
		r.rates.MessageMin, r.rates.MessageMax, r.rates.VoicePerMinute, r.rates.ReactionGiven, r.rates.DailyBonus)

	return &discordgo.MessageEmbed{
		Title:       TitleVerification,
		Description: desc,
		Color:       ColorVerification,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldLevelSystem, Value: system},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: FooterVerification},
	}
}

// LevelUp renders the announcement for member reaching newLevel
func (r *Renderer) LevelUp(member domain.Member, oldLevel, newLevel int, totalXP int64, crossed []domain.RewardTier) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       TitleLevelUp,
		Description: fmt.Sprintf("%s reached **Level %d**!", member.Mention(), newLevel),
		Color:       ColorLevelUp,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldPreviousLevel, Value: fmt.Sprintf("%d", oldLevel), Inline: true},
			{Name: FieldNewLevel, Value: fmt.Sprintf("%d", newLevel), Inline: true},
			{Name: FieldTotalXP, Value: r.number(totalXP), Inline: true},
		},
	}
	if member.AvatarURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: member.AvatarURL}
	}
	if len(crossed) > 0 {
		names := make([]string, 0, len(crossed))
		for _, t := range crossed {
			names = append(names, fmt.Sprintf("Level %d: **%s**", t.Level, r.title.String(t.Name)))
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: FieldMilestones, Value: strings.Join(names, "\n")})
	}
	return e
}

// Profile renders a member's progress
func (r *Renderer) Profile(member domain.Member, rec domain.ProgressRecord) *discordgo.MessageEmbed {
	p := level.ProgressFor(rec.XP)
	e := &discordgo.MessageEmbed{
		Title: fmt.Sprintf(TitleProfileFmt, member.Username),
		Color: ColorProfile,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldLevel, Value: fmt.Sprintf("%d", rec.Level), Inline: true},
			{Name: FieldTotalXP, Value: r.number(rec.XP), Inline: true},
			{Name: FieldProgress, Value: r.printer.Sprintf("%d/%d XP", p.Current, p.Needed), Inline: true},
			{Name: FieldMessages, Value: r.number(rec.TotalMessages), Inline: true},
			{Name: FieldVoiceTime, Value: r.printer.Sprintf("%d minutes", rec.VoiceMinutes()), Inline: true},
			{Name: FieldMemberSince, Value: fmt.Sprintf("<t:%d:R>", rec.JoinedAt/int64(time.Second/time.Millisecond)), Inline: true},
		},
	}
	if member.AvatarURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: member.AvatarURL}
	}
	return e
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	// Name is the display name, empty when the member could not be resolved
	Name   string
	UserID string
	Level  int
	XP     int64
}

// Leaderboard renders ranked entries, best first
func (r *Renderer) Leaderboard(entries []LeaderboardEntry, now time.Time) *discordgo.MessageEmbed {
	var b strings.Builder
	for i, entry := range entries {
		name := "**" + entry.Name + "**"
		if entry.Name == "" {
			name = domain.Member{UserID: entry.UserID}.Mention()
		}
		b.WriteString(r.printer.Sprintf("%s %s - Level %d (%d XP)\n", rankLabel(i), name, entry.Level, entry.XP))
	}

	desc := b.String()
	if desc == "" {
		desc = MsgNoData
	}
	return &discordgo.MessageEmbed{
		Title:       TitleLeaderboard,
		Description: desc,
		Color:       ColorLeaderboard,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

func rankLabel(i int) string {
	switch i {
	case 0:
		return MedalFirst
	case 1:
		return MedalSecond
	case 2:
		return MedalThird
	default:
		return fmt.Sprintf("%d.", i+1)
	}
}
