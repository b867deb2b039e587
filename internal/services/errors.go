package services

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomClosed           = errors.New("room is closed")
	ErrParticipantNotFound  = errors.New("participant not found in room")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotHost              = errors.New("only a room host can do that")
	ErrNotCreator           = errors.New("only the room creator can do that")
	ErrIdentityRequired     = errors.New("exactly one of user id or guest id must be set")
)
