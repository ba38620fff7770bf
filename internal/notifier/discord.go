package notifier

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

type Notifier interface {
	NotifyPurchase(headers []string, row []any) error
}

// ChannelSender is the part of *discordgo.Session the notifier uses.
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   ChannelSender
	channelID string
}

func NewDiscordNotifier(session ChannelSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordSession opens a bot session for token.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyPurchase(headers []string, row []any) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, FormatPurchase(headers, row))
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

// FormatPurchase renders the non-empty cells of a row, one per line.
func FormatPurchase(headers []string, row []any) string {
	var b strings.Builder
	b.WriteString("🛒 **Nouvel achat**")
	for i, h := range headers {
		if i >= len(row) {
			break
		}
		value := formatCell(row[i])
		if value == "" || value == "0" {
			continue
		}
		fmt.Fprintf(&b, "\n**%s:** %s", h, value)
	}
	return b.String()
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case time.Time:
		return c.Format("2006-01-02 15:04")
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
