package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"vetconnect-client/internal/adapters/storage/memory"
	"vetconnect-client/internal/adapters/storage/postgres"
	"vetconnect-client/internal/adapters/vetconnect"
	"vetconnect-client/internal/domain/animals"
	"vetconnect-client/internal/domain/clinics"
	"vetconnect-client/internal/domain/consultations"
	"vetconnect-client/internal/domain/history"
	"vetconnect-client/internal/domain/users"
	"vetconnect-client/internal/domain/vets"
	"vetconnect-client/internal/live"
	"vetconnect-client/internal/platform/httpclient"
	"vetconnect-client/internal/platform/logger"
	"vetconnect-client/internal/reminder"
	"vetconnect-client/internal/session"
)

// syncd es el daemon de datos del cliente: mantiene el cache local,
// corre los refreshes en background y el recordatorio diario de vacunas.
//
// Config por env:
//   - VETCONNECT_BASE_URL  URL del backend (requerido)
//   - DB_DSN               Postgres para el cache local (opcional, sin DSN usa memoria)
//   - REDIS_ADDR           Redis para la sesión (opcional, sin addr usa memoria)
//   - NOTIFY_WEBHOOK_URL   destino de las notificaciones (opcional, sin URL van al log)
//   - SYNC_INTERVAL        intervalo del loop de sync (opcional, default 15m)
//   - VETCONNECT_EMAIL / VETCONNECT_PASSWORD  login de arranque (opcional, para corridas headless)
//   - LOG_LEVEL, LOG_FORMAT, APP_NAME
func main() {
	log := logger.NewFromEnv()

	baseURL := os.Getenv("VETCONNECT_BASE_URL")
	if baseURL == "" {
		log.Error("VETCONNECT_BASE_URL is required", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sesión: Redis si hay addr, memoria si no.
	var sessStore session.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("redis unavailable", map[string]any{"addr": addr, "error": err.Error()})
			os.Exit(1)
		}
		sessStore = session.NewRedisStore(rdb)
		log.Info("session store: redis", map[string]any{"addr": addr})
	} else {
		sessStore = session.NewMemoryStore()
		log.Info("session store: memory", nil)
	}

	// Cache local: Postgres si hay DSN, memoria si no.
	var (
		usersCache         users.Cache
		animalsCache       animals.Cache
		consultationsCache consultations.Cache
		clinicsCache       clinics.Cache
		vetsCache          vets.Cache
		historyCache       history.Cache
	)
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := postgres.Open(dsn)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		usersCache = postgres.NewUserCache(db)
		animalsCache = postgres.NewAnimalCache(db)
		consultationsCache = postgres.NewConsultationCache(db)
		clinicsCache = postgres.NewClinicCache(db)
		vetsCache = postgres.NewVetCache(db)
		historyCache = postgres.NewHistoryCache(db)
		log.Info("local cache: postgres", nil)
	} else {
		usersCache = memory.NewUserCache()
		animalsCache = memory.NewAnimalCache()
		consultationsCache = memory.NewConsultationCache()
		clinicsCache = memory.NewClinicCache()
		vetsCache = memory.NewVetCache()
		historyCache = memory.NewHistoryCache()
		log.Info("local cache: memory", nil)
	}

	client, err := vetconnect.NewClient(vetconnect.Config{BaseURL: baseURL}, sessStore)
	if err != nil {
		log.Error("vetconnect client", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	refresher := live.NewRefresher(log)

	userSvc := users.NewService(client, usersCache, sessStore, log)
	animalRepo := animals.NewRepository(client, animalsCache, refresher, log)
	consultationRepo := consultations.NewRepository(client, consultationsCache, refresher, log)
	clinicRepo := clinics.NewRepository(client, clinicsCache, refresher, log)
	vetRepo := vets.NewRepository(client, vetsCache, refresher, log)
	historyRepo := history.NewRepository(client, historyCache, refresher, log)

	// Login de arranque para corridas headless (dev). Con Redis compartido la
	// sesión normalmente ya la dejó la app.
	if email := os.Getenv("VETCONNECT_EMAIL"); email != "" {
		if _, err := userSvc.Login(ctx, email, os.Getenv("VETCONNECT_PASSWORD")); err != nil {
			log.Warn("startup login failed", map[string]any{"error": err.Error()})
		}
	}

	// Loop de sincronización: refresca los scopes de la sesión activa.
	syncInterval := 15 * time.Minute
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			syncInterval = d
		}
	}
	go func() {
		ticker := time.NewTicker(syncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sess, err := sessStore.Load(ctx)
				if err != nil || !sess.LoggedIn() {
					continue
				}
				clinicRepo.ScheduleRefresh()
				vetRepo.ScheduleRefresh()
				animalRepo.ScheduleRefresh(sess.UserID)
				consultationRepo.ScheduleRefresh(sess.UserID)
				if sess.AnimalID > 0 {
					historyRepo.ScheduleRefresh(sess.AnimalID)
				}
			}
		}
	}()

	// Recordatorio diario de vacunas.
	var notifier reminder.Notifier
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		wn, err := reminder.NewWebhookNotifier(httpclient.New(0), url)
		if err != nil {
			log.Error("webhook notifier", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		notifier = wn
	} else {
		notifier = &reminder.LogNotifier{Log: log}
	}

	sched := reminder.NewScheduler(log)
	task, err := sched.Register(ctx, reminder.TaskConfig{
		Name:     "vaccine-reminder",
		Online:   online(baseURL),
		Source:   reminder.NewVaccineParamSource(sessStore, animalsCache, historyCache),
		Notifier: notifier,
	})
	if err != nil {
		log.Error("register reminder task", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log.Info("syncd running", map[string]any{"backend": baseURL})

	<-ctx.Done()
	log.Info("shutting down", nil)

	// Drenar refreshes en vuelo y esperar la tarea antes de salir.
	refresher.Wait()
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
	}
}

// online chequea el backend antes de cada corrida del recordatorio.
func online(baseURL string) reminder.ConnectivityFunc {
	hc, err := httpclient.NewWithBaseURL(baseURL, 5*time.Second)
	if err != nil {
		return func(context.Context) bool { return false }
	}
	return func(ctx context.Context) bool {
		err := hc.DoJSON(ctx, http.MethodGet, "/health", nil, nil)
		return err == nil || httpclient.StatusOf(err) > 0
	}
}
