package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a community member who can play matches
type Player struct {
	ID          PlayerID
	DisplayName string
	Rating      int  // ELO rating, mutated only when a result is confirmed
	Premium     bool // server-side premium entitlement
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
	DeletedAt   *time.Time // set on account closure; players are never hard-deleted
}

// Deleted returns true if the player's account has been closed
func (p *Player) Deleted() bool {
	return p.DeletedAt != nil
}

// RegisteredPlayer extends Player with authentication data
// Stored separately so the password hash never travels with session data
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
