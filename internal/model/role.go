package model

import (
	"github.com/google/uuid"
)

// AccessLevel is an ordered privilege rank. Higher levels satisfy every gate
// a lower level satisfies, so checks are simple "at least" comparisons.
// Doctor-tier and hospital-tier accounts are authorization-equivalent and
// share the Hospital level.
type AccessLevel int

const (
	LevelUser     AccessLevel = 1
	LevelHospital AccessLevel = 5
	LevelAdmin    AccessLevel = 10
)

func (l AccessLevel) AtLeast(min AccessLevel) bool {
	return l >= min
}

func (l AccessLevel) Valid() bool {
	return l == LevelUser || l == LevelHospital || l == LevelAdmin
}

func (l AccessLevel) String() string {
	switch l {
	case LevelAdmin:
		return "admin"
	case LevelHospital:
		return "hospital"
	default:
		return "user"
	}
}

// Identity-provider group claim names.
const (
	GroupAdmin    = "admin"
	GroupHospital = "hospital"
)

// LevelFromGroups maps group claims to an access level, highest group wins.
func LevelFromGroups(groups []string) AccessLevel {
	level := LevelUser
	for _, g := range groups {
		switch g {
		case GroupAdmin:
			return LevelAdmin
		case GroupHospital:
			level = LevelHospital
		}
	}
	return level
}

// GroupsForLevel is the inverse mapping used when issuing credentials.
func GroupsForLevel(level AccessLevel) []string {
	switch level {
	case LevelAdmin:
		return []string{GroupAdmin}
	case LevelHospital:
		return []string{GroupHospital}
	default:
		return nil
	}
}

// Principal is the authenticated caller's resolved identity attached to a
// request after the authentication gate.
type Principal struct {
	AccountID  uuid.UUID
	Email      string
	Level      AccessLevel
	HospitalID *uuid.UUID
	ProfileIDs UUIDList
}

// HasLevel reports whether the principal's level appears in the given set.
// Used for exclusion-role bypasses on ownership checks.
func (p *Principal) HasLevel(levels ...AccessLevel) bool {
	for _, l := range levels {
		if p.Level == l {
			return true
		}
	}
	return false
}
