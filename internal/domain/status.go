package domain

import "fmt"

type ContestStatus string

const (
	ContestActive    ContestStatus = "active"
	ContestLive      ContestStatus = "live"
	ContestCompleted ContestStatus = "completed"
	ContestCancelled ContestStatus = "cancelled"
)

var contestTransitions = map[ContestStatus][]ContestStatus{
	ContestActive: {ContestLive, ContestCompleted, ContestCancelled},
	ContestLive:   {ContestCompleted, ContestCancelled},
}

func (s ContestStatus) Valid() bool {
	switch s {
	case ContestActive, ContestLive, ContestCompleted, ContestCancelled:
		return true
	}
	return false
}

// Transition returns next if the move from s is allowed.
func (s ContestStatus) Transition(next ContestStatus) (ContestStatus, error) {
	for _, allowed := range contestTransitions[s] {
		if allowed == next {
			return next, nil
		}
	}
	return s, fmt.Errorf("contest %s -> %s: %w", s, next, ErrInvalidTransition)
}

// Joinable reports whether new teams may enter a contest in this status.
func (s ContestStatus) Joinable() bool {
	return s == ContestActive
}

type FixtureStatus string

const (
	FixtureUpcoming  FixtureStatus = "upcoming"
	FixtureLive      FixtureStatus = "live"
	FixtureCompleted FixtureStatus = "completed"
)

var fixtureTransitions = map[FixtureStatus]FixtureStatus{
	FixtureUpcoming: FixtureLive,
	FixtureLive:     FixtureCompleted,
}

func (s FixtureStatus) Valid() bool {
	switch s {
	case FixtureUpcoming, FixtureLive, FixtureCompleted:
		return true
	}
	return false
}

func (s FixtureStatus) Transition(next FixtureStatus) (FixtureStatus, error) {
	if fixtureTransitions[s] == next {
		return next, nil
	}
	return s, fmt.Errorf("fixture %s -> %s: %w", s, next, ErrInvalidTransition)
}
