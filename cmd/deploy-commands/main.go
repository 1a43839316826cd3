package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/runportcullis/portcullis-bot/internal/commands"
	"github.com/runportcullis/portcullis-bot/internal/config"
)

// deploy-commands registers the application command set for the configured
// guild. Run it once after any change to the command definitions.
func main() {
	cfg := config.Load()

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discord session: %v\n", err)
		os.Exit(1)
	}

	defs := commands.Definitions()
	registered, err := session.ApplicationCommandBulkOverwrite(cfg.DiscordAppID, cfg.DiscordGuildID, defs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register commands: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("registered %d application commands\n", len(registered))
}
