package model

import "errors"

// Common errors used across the application
var (
	// Move errors
	ErrIllegalDirection = errors.New("illegal direction")
	ErrInvalidPosition  = errors.New("invalid board position")
	ErrInvalidHandIndex = errors.New("invalid hand index")
	ErrInvalidLetter    = errors.New("invalid letter")
	ErrGameOver         = errors.New("game is over")

	// Tile bag errors
	ErrEmptyBag = errors.New("tile bag is empty")

	// Status errors
	ErrUnknownStatus = errors.New("unknown status effect")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
