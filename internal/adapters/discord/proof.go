package discord

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

// handleProofUpload: cualquier attachment en un canal de scrim se intenta
// como prueba. Si el canal no tiene match activo se ignora en silencio.
func (r *Router) handleProofUpload(msg *discordgo.MessageCreate) {
	active, err := r.matches.GetByChannel(msg.ChannelID)
	if err != nil {
		return
	}
	att := msg.Attachments[0]

	ctx, cancel := ctxFor()
	defer cancel()

	m, deltas, err := r.matches.SubmitProof(ctx, active.ID, msg.Author.ID, att.Filename, int64(att.Size), att.URL)
	if err != nil {
		// feedback solo para los errores que el jugador puede corregir
		switch {
		case errors.Is(err, domain.ErrAwaitingVotes),
			errors.Is(err, domain.ErrNotProofLeader),
			errors.Is(err, domain.ErrInvalidProof),
			errors.Is(err, domain.ErrProofTooLarge):
			if _, sendErr := r.s.ChannelMessageSendReply(msg.ChannelID, errText(err), msg.Reference()); sendErr != nil {
				log.Printf("[scrim] proof feedback: %v", sendErr)
			}
		default:
			log.Printf("[scrim] submit proof: %v", err)
		}
		return
	}
	r.announceResult(m, deltas)
}
