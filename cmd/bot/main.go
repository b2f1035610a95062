package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/jose-valero/scrims-bot/internal/adapters/discord"
	"github.com/jose-valero/scrims-bot/internal/app/service"
	"github.com/jose-valero/scrims-bot/internal/infra/config"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Println("✅ DB lista y migrada")

	// Repos
	playerRepo := storage.NewPlayerRepo(db)
	matchRepo := storage.NewMatchRepo(db)
	settingsRepo := storage.NewSettingsRepo(db)
	historyRepo := storage.NewHistoryRepo(db)
	panelRepo := storage.NewPanelRepo(db)

	// Services
	queueSvc := service.NewQueueService(playerRepo, settingsRepo)
	matchSvc := service.NewMatchService(matchRepo, playerRepo, historyRepo, settingsRepo, nil)
	settingsSvc := service.NewSettingsService(settingsRepo)
	statsSvc := service.NewStatsService(playerRepo, historyRepo)

	// Los matches que quedaron vivos en la DB vuelven al registry
	if n, err := matchSvc.Restore(context.Background()); err != nil {
		log.Fatalf("restore matches: %v", err)
	} else if n > 0 {
		log.Printf("✅ %d match(es) activos restaurados", n)
	}

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// Router
	r := discordrouter.NewRouter(
		s,
		cfg.DiscordGuild,
		discordrouter.Cfg{
			ScrimCategoryID:  cfg.ScrimCategoryID,
			HistoryChannelID: cfg.HistoryChannelID,
			QueueChannelID:   cfg.QueueChannelID,
		},
		queueSvc,
		matchSvc,
		settingsSvc,
		statsSvc,
		panelRepo,
		cfg.AdminRoleIDs,
	)
	matchSvc.SetNotifier(r)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados en guild %s", cfg.DiscordGuild)

	if err := r.EnsurePanel(context.Background(), cfg.DiscordGuild); err != nil {
		log.Printf("panel de cola: %v", err)
	}

	// Sweeper de pruebas vencidas, atado al shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.NewSweeper(matchSvc, 1*time.Minute).Start(ctx)

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
	log.Println("👋 apagando")
}
