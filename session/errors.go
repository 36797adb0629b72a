package session

import "errors"

var (
	// ErrGameOver is returned for moves after the game has ended.
	ErrGameOver = errors.New("game over")
	// ErrInvalidSlot is returned for a slot index outside the offer.
	ErrInvalidSlot = errors.New("invalid slot")
	// ErrSlotEmpty is returned for a slot whose shape was already placed.
	ErrSlotEmpty = errors.New("slot already used")
	// ErrCannotPlace is returned when the shape does not fit at the origin.
	ErrCannotPlace = errors.New("shape does not fit there")
	// ErrNoSnapshot is returned by Revive before any checkpoint exists.
	ErrNoSnapshot = errors.New("no snapshot to revive from")
	// ErrReviveLimit is returned once every allowed revive is spent.
	ErrReviveLimit = errors.New("no revives left")
)
