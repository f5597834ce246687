package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/bot"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/config"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/db"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/intent"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/llm"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/pricing"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/store"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/types"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

const chatTimeout = 20 * time.Second

// Responder is the cascade as the handler sees it.
type Responder interface {
	Respond(ctx context.Context, sessionID, message string) string
}

type Server struct {
	router   *chi.Mux
	cascade  Responder
	database *db.DB
	log      *logging.Logger
}

func NewServer(cfg config.Config, log *logging.Logger) (*Server, error) {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rules, err := intent.Load(cfg.RulesFile, intent.Vars{
		Phone:           cfg.BusinessPhone,
		Website:         cfg.BusinessWebsite,
		DiscountPercent: cfg.DiscountPercent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load intent rules: %w", err)
	}

	priceClient := pricing.NewClient(cfg.PricingAPIURL, log)
	priceService := pricing.NewService(priceClient, pricing.NewResponder(cfg.DiscountPercent))

	var completer llm.Completer
	if cfg.OpenAIAPIKey != "" {
		completer = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model)
	}
	fallback := llm.NewFallback(completer, cfg.BusinessWebsite, cfg.DiscountPercent, log)

	history, database, err := newHistoryStore(cfg, log)
	if err != nil {
		return nil, err
	}

	cascade := bot.NewCascade(
		intent.NewSmallTalkMatcher(rules),
		intent.NewFaqMatcher(rules, priceService),
		fallback,
		history,
		log,
	)

	s := &Server{
		router:   r,
		cascade:  cascade,
		database: database,
		log:      log,
	}
	s.routes()
	return s, nil
}

// newHistoryStore picks the history backend: redis when configured, then
// postgres, then in-process memory.
func newHistoryStore(cfg config.Config, log *logging.Logger) (store.History, *db.DB, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		log.Info("using redis history store")
		return store.NewRedisStore(redis.NewClient(opts)), nil, nil
	}
	if cfg.DatabaseURL != "" {
		database, err := db.New(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.EnsureSchema(); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		log.Info("using postgres history store")
		return store.NewPostgresStore(database), database, nil
	}
	log.Info("using in-memory history store")
	return store.NewMemoryStore(0), nil, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
}

func (s *Server) Router() http.Handler { return s.router }

// Close releases backend resources.
func (s *Server) Close() error {
	if s.database != nil {
		return s.database.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := s.getOrCreateSessionID(r, w, req.SessionID)

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()
	reply := s.cascade.Respond(ctx, sid, req.Message)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(types.ChatResponse{SessionID: sid, Reply: reply})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return "s_" + uuid.NewString()
}

// getSessionID retrieves the session ID from the body, cookie, header or
// query parameter, in that order.
func getSessionID(r *http.Request, bodySessionID string) string {
	if bodySessionID != "" {
		return bodySessionID
	}
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID gets the existing session ID or creates a new one,
// setting the cookie.
func (s *Server) getOrCreateSessionID(r *http.Request, w http.ResponseWriter, bodySessionID string) string {
	sid := getSessionID(r, bodySessionID)
	if sid == "" {
		sid = newSessionID()
		s.log.Debug("creating new session", "session", sid)
		SetSessionCookie(w, sid)
	}
	return sid
}
