package discord

import (
	"errors"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

// errText traduce los errores del dominio a algo mostrable; cualquier cosa
// no mapeada (fallas de DB, etc) se loguea arriba y acá sale genérico.
func errText(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyQueued):
		return "⚠️ Ya estás en la cola."
	case errors.Is(err, domain.ErrNotQueued):
		return "⚠️ No estás en la cola."
	case errors.Is(err, domain.ErrQueueFull):
		return "⚠️ La cola está llena, esperá al próximo match."
	case errors.Is(err, domain.ErrPlayerRestricted):
		return "⏳ Tenés un timeout activo, no podés entrar a la cola todavía."
	case errors.Is(err, domain.ErrNotYourTurn):
		return "⚠️ No es tu turno de pickear."
	case errors.Is(err, domain.ErrPlayerAlreadyDrafted):
		return "⚠️ Ese jugador ya tiene equipo."
	case errors.Is(err, domain.ErrUnknownPlayer):
		return "⚠️ Ese jugador no es parte del match."
	case errors.Is(err, domain.ErrDraftNotActive):
		return "⚠️ El draft de este match ya terminó."
	case errors.Is(err, domain.ErrMatchNotFound):
		return "⚠️ No encuentro un match activo con ese id."
	case errors.Is(err, domain.ErrMatchTerminal):
		return "⚠️ Ese match ya está cerrado."
	case errors.Is(err, domain.ErrNotALeader):
		return "⚠️ Solo los líderes pueden hacer eso."
	case errors.Is(err, domain.ErrNotLobbyLeader):
		return "⚠️ El lobby lo crea el líder del equipo 2."
	case errors.Is(err, domain.ErrInvalidTeam):
		return "⚠️ El equipo tiene que ser 1 o 2."
	case errors.Is(err, domain.ErrInvalidMvp):
		return "⚠️ El MVP tiene que ser un jugador del match."
	case errors.Is(err, domain.ErrInvalidLobbyID):
		return "⚠️ Lobby inválido: 4 a 10 letras/números (ej: AB12CD)."
	case errors.Is(err, domain.ErrInvalidProof):
		return "⚠️ La prueba tiene que ser una imagen (png/jpg/jpeg/gif/webp)."
	case errors.Is(err, domain.ErrProofTooLarge):
		return "⚠️ La imagen pesa más de 10MB."
	case errors.Is(err, domain.ErrNotProofLeader):
		return "⚠️ La prueba la sube el líder del equipo ganador."
	case errors.Is(err, domain.ErrAwaitingVotes):
		return "⚠️ Todavía faltan votos, no se puede subir la prueba."
	case errors.Is(err, domain.ErrWrongStatus):
		return "⚠️ El match no está en el estado correcto para eso."
	case errors.Is(err, domain.ErrPointsOutOfRange):
		return "⚠️ Puntos fuera de rango (0 a 10000)."
	case errors.Is(err, domain.ErrTimeoutOutOfRange):
		return "⚠️ Minutos fuera de rango (1 a 1440)."
	case errors.Is(err, domain.ErrBadQueueSize):
		return "⚠️ Hacen falta al menos 4 jugadores y cantidad par."
	case errors.Is(err, domain.ErrPlayerNotFound):
		return "⚠️ Ese jugador todavía no jugó ningún scrim."
	}
	if domain.KindOf(err) == domain.KindExternal {
		return "⚠️ Problemas técnicos, probá de nuevo en un rato."
	}
	return "⚠️ Ocurrió un error, probá de nuevo."
}
