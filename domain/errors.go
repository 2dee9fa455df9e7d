package domain

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrNotAllowed    = errors.New("action not allowed")
	ErrInvalidPhase  = errors.New("action not valid in current phase")
	ErrInvalidTarget = errors.New("invalid target")
	ErrInvalidInput  = errors.New("invalid input")
)
