package domain

import "errors"

// ErrKind clasifica los errores del core; los adapters deciden el mensaje
// al usuario, el core solo devuelve valores tipados.
type ErrKind int

const (
	KindValidation ErrKind = iota
	KindNotFound
	KindPermission
	KindStateConflict
	KindExternal
)

type Error struct {
	Kind ErrKind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newErr(kind ErrKind, msg string) *Error { return &Error{Kind: kind, msg: msg} }

// KindOf devuelve el kind de un error del core (KindExternal si no es nuestro).
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindExternal
}

// Queue
var (
	ErrAlreadyQueued    = newErr(KindStateConflict, "already in the queue")
	ErrNotQueued        = newErr(KindStateConflict, "not in the queue")
	ErrQueueFull        = newErr(KindStateConflict, "queue is full")
	ErrPlayerRestricted = newErr(KindPermission, "player is timed out")
)

// Draft
var (
	ErrNotYourTurn          = newErr(KindStateConflict, "not your turn to pick")
	ErrPlayerAlreadyDrafted = newErr(KindStateConflict, "player already drafted")
	ErrUnknownPlayer        = newErr(KindNotFound, "player not in this match")
	ErrDraftNotActive       = newErr(KindStateConflict, "match is not drafting")
)

// Match / votes / proof
var (
	ErrMatchNotFound  = newErr(KindNotFound, "match not found")
	ErrMatchTerminal  = newErr(KindStateConflict, "match already completed or cancelled")
	ErrNotALeader     = newErr(KindPermission, "only match leaders can do that")
	ErrNotLobbyLeader = newErr(KindPermission, "only the lobby leader can share the lobby id")
	ErrInvalidTeam    = newErr(KindValidation, "invalid team number")
	ErrInvalidMvp     = newErr(KindValidation, "mvp must be a match participant")
	ErrInvalidLobbyID = newErr(KindValidation, "lobby id must be 4-10 letters/digits")
	ErrInvalidProof   = newErr(KindValidation, "proof must be an image attachment")
	ErrProofTooLarge  = newErr(KindValidation, "proof image is too large")
	ErrNotProofLeader = newErr(KindPermission, "only the winning leader can upload proof")
	ErrAwaitingVotes  = newErr(KindStateConflict, "match is not awaiting proof yet")
	ErrWrongStatus    = newErr(KindStateConflict, "action not allowed in current match status")
)

// Settings / admin
var (
	ErrPointsOutOfRange  = newErr(KindValidation, "points must be between 0 and 10000")
	ErrTimeoutOutOfRange = newErr(KindValidation, "timeout must be 1-1440 minutes")
	ErrBadQueueSize      = newErr(KindValidation, "queue size must be even, 4-20")
	ErrPlayerNotFound    = newErr(KindNotFound, "player not found")
)
