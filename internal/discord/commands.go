package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RegisterCommands объявляет slash-команды validate и renew с
// типизированными опциями. Вызывается один раз на этапе настройки
// приложения, не в рантайме.
func (d *Session) RegisterCommands(applicationID string) error {
	const op = "discord.RegisterCommands"

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "validate",
			Description: "Valide un paiement et enregistre en compta",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Utilisateur à valider",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "proof",
					Description: "Preuve de paiement (lien/ID)",
					Required:    true,
				},
			},
		},
		{
			Name:        "renew",
			Description: "Renouvelle la licence d'un client existant",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "clientid",
					Description: "ID client (ex: CLT-00001)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "proof",
					Description: "Nouvelle preuve de paiement",
					Required:    true,
				},
			},
		},
	}

	if _, err := d.s.ApplicationCommandBulkOverwrite(applicationID, d.guildID, commands); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
