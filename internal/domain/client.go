package domain

import (
	"context"
	"time"
)

// Client is a saved billing contact, unique per (user, guild, discord id).
type Client struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	GuildID   string    `json:"guildId"`
	DiscordID string    `json:"discordId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpsertClientParams inserts a client or refreshes name and email on conflict.
type UpsertClientParams struct {
	UserID    string
	GuildID   string
	DiscordID string
	Name      string
	Email     string
}

// ClientService manages saved billing contacts.
type ClientService interface {
	Upsert(ctx context.Context, params UpsertClientParams) (*Client, error)
	List(ctx context.Context, guildID, userID string) ([]Client, error)
	Get(ctx context.Context, guildID, userID, discordID string) (*Client, error)
	Delete(ctx context.Context, guildID, userID, discordID string) error
}
