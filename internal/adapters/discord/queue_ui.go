package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

const uiDebounce = 150 * time.Millisecond

// publishQueuePanel publica (o re-publica) el panel con botones en este
// canal y guarda la referencia para poder editarlo después.
func (r *Router) publishQueuePanel(ctx context.Context, guildID, channelID string) error {
	players, lastLeft := r.queue.Snapshot(guildID)
	cfg, err := r.settings.Get(ctx, guildID)
	if err != nil {
		return err
	}
	msg, err := r.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{queuePanelEmbed(players, lastLeft, cfg.QueueSize)},
		Components: queuePanelComponents(),
	})
	if err != nil {
		return err
	}
	return r.panels.Upsert(ctx, guildID, channelID, msg.ID)
}

// EnsurePanel deja un panel vivo en el canal de cola configurado: si ya hay
// uno registrado en ese canal lo repinta, si no publica uno nuevo.
func (r *Router) EnsurePanel(ctx context.Context, guildID string) error {
	if r.cfg.QueueChannelID == "" {
		return nil
	}
	panel, err := r.panels.Get(ctx, guildID)
	if err == nil && panel.ChannelID == r.cfg.QueueChannelID {
		r.refreshQueuePanel(guildID)
		return nil
	}
	if err != nil && err != storage.ErrNotFound {
		return err
	}
	return r.publishQueuePanel(ctx, guildID, r.cfg.QueueChannelID)
}

// refreshQueuePanel repinta el panel con debounce: una ráfaga de clicks
// termina en un solo edit.
func (r *Router) refreshQueuePanel(guildID string) {
	r.refreshMu.Lock()
	if r.refreshTimer != nil {
		r.refreshTimer.Stop()
	}
	r.refreshTimer = time.AfterFunc(uiDebounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		panel, err := r.panels.Get(ctx, guildID)
		if err != nil {
			if err != storage.ErrNotFound {
				log.Printf("[panel] get: %v", err)
			}
			return
		}
		players, lastLeft := r.queue.Snapshot(guildID)
		cfg, err := r.settings.Get(ctx, guildID)
		if err != nil {
			log.Printf("[panel] settings: %v", err)
			return
		}
		embeds := []*discordgo.MessageEmbed{queuePanelEmbed(players, lastLeft, cfg.QueueSize)}
		comps := queuePanelComponents()
		if _, err := r.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    panel.ChannelID,
			ID:         panel.MessageID,
			Embeds:     &embeds,
			Components: &comps,
		}); err != nil {
			log.Printf("[panel] edit: %v", err)
		}
	})
	r.refreshMu.Unlock()
}
