package discord

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/app/service"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

// Cfg: canales fijos del guild (todos opcionales salvo el guild mismo).
type Cfg struct {
	ScrimCategoryID  string
	HistoryChannelID string
	QueueChannelID   string
}

type Router struct {
	s       *discordgo.Session
	guildID string
	cfg     Cfg

	queue    *service.QueueService
	matches  *service.MatchService
	settings *service.SettingsService
	stats    *service.StatsService
	panels   *storage.PanelRepo

	adminRoleIDs []string
	clickLimiter *userLimiter

	refreshMu    sync.Mutex
	refreshTimer *time.Timer
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	cfg Cfg,
	queue *service.QueueService,
	matches *service.MatchService,
	settings *service.SettingsService,
	stats *service.StatsService,
	panels *storage.PanelRepo,
	adminRoleIDs []string,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		cfg:          cfg,
		queue:        queue,
		matches:      matches,
		settings:     settings,
		stats:        stats,
		panels:       panels,
		adminRoleIDs: adminRoleIDs,
		clickLimiter: newUserLimiter(time.Second),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in interaction: %v", rec)
				ReplyEphemeral(s, ic, "⚠️ Ocurrió un error inesperado.")
			}
		}()

		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlash(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		case discordgo.InteractionModalSubmit:
			r.handleModalSubmit(s, ic)
		}
	})

	// Las pruebas llegan como attachments sueltos en el canal del match.
	r.s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || len(m.Attachments) == 0 {
			return
		}
		r.handleProofUpload(m)
	})
}

// ctxFor: timeout corto estándar para trabajo detrás de una interacción.
func ctxFor() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
