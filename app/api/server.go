package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ariatravel/app/client/fastapi"
	"ariatravel/app/config"
	"ariatravel/app/model"
	"ariatravel/app/service/agent"
	"ariatravel/app/service/catalog"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	sessionHeader   = "X-Session-ID"
	shutdownTimeout = 10 * time.Second
	probeTimeout    = 3 * time.Second
	maxListLimit    = 100
	searchLimit     = 10
)

type Server struct {
	cfg        *config.Config
	agentSvc   *agent.Service
	catalogSvc *catalog.Service
	backend    *fastapi.Client

	app      *fiber.App
	validate *validator.Validate
	started  time.Time
}

type chatRequest struct {
	Message             string          `json:"message" validate:"required,max=1000"`
	SessionID           string          `json:"session_id" validate:"omitempty,max=128"`
	ConversationHistory []model.Message `json:"conversation_history" validate:"max=50,dive"`
}

type chatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

type destinationsResponse struct {
	Destinations []model.Destination `json:"destinations"`
	Count        int                 `json:"count"`
	Filters      destinationFilters  `json:"filters"`
}

type destinationFilters struct {
	Limit    int    `json:"limit"`
	Featured *bool  `json:"featured"`
	Category string `json:"category,omitempty"`
}

type searchResponse struct {
	Query   string              `json:"query"`
	Results []model.Destination `json:"results"`
	Count   int                 `json:"count"`
}

// componentStatus leaves Available unset for components that are not probed.
type componentStatus struct {
	Configured bool   `json:"configured"`
	Available  *bool  `json:"available,omitempty"`
	Error      string `json:"error,omitempty"`
}

func probed(available bool) *bool {
	return &available
}

type systemStatusResponse struct {
	Status         string                     `json:"status"`
	Providers      []string                   `json:"providers"`
	Sources        []string                   `json:"sources"`
	Components     map[string]componentStatus `json:"components"`
	ActiveSessions int                        `json:"active_sessions"`
	Uptime         string                     `json:"uptime"`
	Timestamp      string                     `json:"timestamp"`
}

func New(di *do.Injector) (*Server, error) {
	return NewServer(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*agent.Service](di),
		do.MustInvoke[*catalog.Service](di),
		do.MustInvoke[*fastapi.Client](di),
	), nil
}

func NewServer(cfg *config.Config, agentSvc *agent.Service, catalogSvc *catalog.Service, backend *fastapi.Client) *Server {
	s := &Server{
		cfg:        cfg,
		agentSvc:   agentSvc,
		catalogSvc: catalogSvc,
		backend:    backend,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		started:    time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "aria",
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          2 * time.Minute,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + sessionHeader,
	}))

	app.Get("/health", s.handleHealth)
	app.Post("/api/chat", s.handleChat)
	app.Get("/api/destinations", s.handleDestinations)
	app.Get("/api/destinations/:id", s.handleDestination)
	app.Get("/api/search/destinations", s.handleSearch)
	app.Get("/api/categories", s.handleCategories)
	app.Get("/api/system-status", s.handleSystemStatus)

	s.app = app

	return s
}

// Run serves until ctx is done, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("HTTP server listening", "addr", s.cfg.HTTP.Addr)

		if err := s.app.Listen(s.cfg.HTTP.Addr); err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown: %w", err)
		}

		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(chatError("Invalid request body"))
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(chatError(validationMessage(err)))
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.Get(sessionHeader)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply := s.agentSvc.ProcessMessage(c.UserContext(), sessionID, req.Message, req.ConversationHistory)

	return c.JSON(chatResponse{
		Success:   true,
		Response:  reply,
		SessionID: sessionID,
		Timestamp: timestamp(),
	})
}

func (s *Server) handleDestinations(c *fiber.Ctx) error {
	query := model.DestinationQuery{
		Limit:    c.QueryInt("limit", catalog.DefaultLimit),
		Category: strings.TrimSpace(c.Query("category")),
	}
	if query.Limit <= 0 || query.Limit > maxListLimit {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
	}

	if raw := c.Query("featured"); raw != "" {
		featured := c.QueryBool("featured")
		query.Featured = &featured
	}

	destinations := s.catalogSvc.Destinations(c.UserContext(), query)

	return c.JSON(destinationsResponse{
		Destinations: destinations,
		Count:        len(destinations),
		Filters: destinationFilters{
			Limit:    query.Limit,
			Featured: query.Featured,
			Category: query.Category,
		},
	})
}

func (s *Server) handleDestination(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "destination id must be an integer")
	}

	destination, ok := s.catalogSvc.Find(c.UserContext(), id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Destination not found")
	}

	return c.JSON(fiber.Map{"destination": destination})
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	text := strings.TrimSpace(c.Query("query"))
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	limit := c.QueryInt("limit", searchLimit)
	if limit <= 0 || limit > maxListLimit {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
	}

	results := s.catalogSvc.Search(c.UserContext(), text, limit)
	if results == nil {
		results = []model.Destination{}
	}

	return c.JSON(searchResponse{
		Query:   text,
		Results: results,
		Count:   len(results),
	})
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": s.catalogSvc.Categories(c.UserContext())})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": timestamp(),
	})
}

func (s *Server) handleSystemStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), probeTimeout)
	defer cancel()

	var backendStatus, cacheStatus componentStatus

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		backendStatus.Configured = s.backend.Enabled()
		if !backendStatus.Configured {
			return nil
		}
		if err := s.backend.Health(groupCtx); err != nil {
			backendStatus.Available = probed(false)
			backendStatus.Error = err.Error()
			return nil
		}
		backendStatus.Available = probed(true)
		return nil
	})

	group.Go(func() error {
		configured, err := s.catalogSvc.CacheStatus(groupCtx)
		cacheStatus.Configured = configured
		if !configured {
			return nil
		}
		if err != nil {
			cacheStatus.Available = probed(false)
			cacheStatus.Error = err.Error()
			return nil
		}
		cacheStatus.Available = probed(true)
		return nil
	})

	_ = group.Wait()


	return c.JSON(systemStatusResponse{
		Status:    "operational",
		Providers: s.agentSvc.ProviderNames(),
		Sources:   append(s.catalogSvc.SourceNames(), "sample"),
		Components: map[string]componentStatus{
			"backend":  backendStatus,
			"model":    {Configured: s.cfg.OpenAI.Token != ""},
			"supabase": {Configured: s.cfg.Supabase.URL != "" && s.cfg.Supabase.Key != ""},
			"cache":    cacheStatus,
			"local":    {Configured: true, Available: probed(true)},
		},
		ActiveSessions: s.agentSvc.ActiveSessions(),
		Uptime:         time.Since(s.started).Round(time.Second).String(),
		Timestamp:      timestamp(),
	})
}

func chatError(message string) chatResponse {
	return chatResponse{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	}
}

func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Invalid request"
	}

	first := validationErrors[0]
	switch {
	case first.Field() == "Message" && first.Tag() == "required":
		return "Message is required"
	case first.Field() == "Message" && first.Tag() == "max":
		return "Message is too long"
	default:
		return fmt.Sprintf("Invalid field %s", first.Field())
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
