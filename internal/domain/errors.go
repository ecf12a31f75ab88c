package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Team composition errors. These are rejected before a team is stored.
var (
	ErrWrongTeamSize        = errors.New("team must have exactly 7 players")
	ErrDuplicatePlayer      = errors.New("player selected more than once")
	ErrOverBudget           = errors.New("team cost exceeds budget")
	ErrPlayerNotInMatch     = errors.New("player is not in either side of the match")
	ErrCaptainNotInTeam     = errors.New("captain is not in the team")
	ErrViceCaptainNotInTeam = errors.New("vice-captain is not in the team")
	ErrCaptainIsViceCaptain = errors.New("captain and vice-captain must differ")
	ErrMissingTeamName      = errors.New("team name is required")
)

var (
	ErrTeamExists    = errors.New("user already has a team in this contest")
	ErrContestFull   = errors.New("contest is full")
	ErrContestClosed = errors.New("contest is not accepting teams")
	// ErrMatchNotCompleted blocks settling a contest before its match ends.
	ErrMatchNotCompleted = errors.New("match has not completed")
	ErrInvalidInput      = errors.New("invalid input")
)
