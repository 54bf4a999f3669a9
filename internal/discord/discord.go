// Package discord оборачивает длительную сессию Discord-бота.
// Сессия создается один раз на процесс и переиспользуется HTTP-шлюзом
// и рассыльщиком напоминаний; discordgo допускает конкурентные вызовы.
package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Имена ролей гильдии, которыми управляет система.
const (
	RoleClient   = "client"
	RoleProspect = "prospect"
)

// Session обертка над discordgo.Session с привязкой к одной гильдии.
type Session struct {
	s       *discordgo.Session
	guildID string
	log     *slog.Logger
}

// New открывает сессию бота. Закрытие — за вызывающим через Close.
func New(botToken, guildID string, log *slog.Logger) (*Session, error) {
	const op = "discord.New"
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("discord session opened", slog.String("guild_id", guildID))
	return &Session{s: s, guildID: guildID, log: log}, nil
}

// Close закрывает соединение с Discord.
func (d *Session) Close() error {
	return d.s.Close()
}

// PromoteToClient выдает участнику роль client и снимает роль prospect,
// если участник ее носит. Отсутствие роли prospect в гильдии ошибкой
// не считается.
func (d *Session) PromoteToClient(holderID string) error {
	const op = "discord.PromoteToClient"

	member, err := d.s.GuildMember(d.guildID, holderID)
	if err != nil {
		return fmt.Errorf("%s: fetch member: %w", op, err)
	}

	clientRole, err := d.roleByName(RoleClient)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := d.s.GuildMemberRoleAdd(d.guildID, holderID, clientRole.ID); err != nil {
		return fmt.Errorf("%s: add role: %w", op, err)
	}

	prospectRole, err := d.roleByName(RoleProspect)
	if err != nil {
		d.log.Info("prospect role not found, nothing to revoke",
			slog.String("guild_id", d.guildID))
		return nil
	}
	for _, roleID := range member.Roles {
		if roleID == prospectRole.ID {
			if err := d.s.GuildMemberRoleRemove(d.guildID, holderID, prospectRole.ID); err != nil {
				return fmt.Errorf("%s: remove role: %w", op, err)
			}
			break
		}
	}
	return nil
}

// SendDM отправляет личное сообщение пользователю.
func (d *Session) SendDM(userID, content string) error {
	const op = "discord.SendDM"
	ch, err := d.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := d.s.ChannelMessageSend(ch.ID, content); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (d *Session) roleByName(name string) (*discordgo.Role, error) {
	roles, err := d.s.GuildRoles(d.guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch roles: %w", err)
	}
	for _, r := range roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("role %q not found", name)
}
