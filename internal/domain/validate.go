package domain

import (
	"regexp"
	"strings"
)

const (
	MaxProofSizeMB = 10
	MinQueueSize   = 4
	MaxQueueSize   = 20
	MinPoints      = 0
	MaxPoints      = 10000
	MinTimeoutMin  = 1
	MaxTimeoutMin  = 1440 // 24h
)

var (
	lobbyIDRe = regexp.MustCompile(`^[A-Z0-9]{4,10}$`)

	imageExtensions = map[string]struct{}{
		".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {},
	}
)

// ValidateLobbyID normaliza a mayúsculas y valida el formato del código.
func ValidateLobbyID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if !lobbyIDRe.MatchString(id) {
		return "", ErrInvalidLobbyID
	}
	return id, nil
}

// ValidateProofAttachment: chequeo básico de formato, nada de autenticidad.
func ValidateProofAttachment(filename string, sizeBytes int64) error {
	if sizeBytes > MaxProofSizeMB*1024*1024 {
		return ErrProofTooLarge
	}
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return ErrInvalidProof
	}
	ext := strings.ToLower(filename[dot:])
	if _, ok := imageExtensions[ext]; !ok {
		return ErrInvalidProof
	}
	return nil
}

func ValidatePoints(v int) error {
	if v < MinPoints || v > MaxPoints {
		return ErrPointsOutOfRange
	}
	return nil
}

func ValidateTimeoutMinutes(v int) error {
	if v < MinTimeoutMin || v > MaxTimeoutMin {
		return ErrTimeoutOutOfRange
	}
	return nil
}

func ValidateQueueSize(v int) error {
	if v < MinQueueSize || v > MaxQueueSize || v%2 != 0 {
		return ErrBadQueueSize
	}
	return nil
}
