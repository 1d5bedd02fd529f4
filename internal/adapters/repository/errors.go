package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnknownTournament = errors.New("unknown tournament")
	ErrAlreadyRegistered = errors.New("tournament already registered")
	ErrUnknownCompetitor = errors.New("competitor not in roster")
)
