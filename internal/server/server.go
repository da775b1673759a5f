package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/storepilot/storepilot/internal/chat"
	"github.com/storepilot/storepilot/internal/llm"
	"github.com/storepilot/storepilot/internal/shopify"
	"github.com/storepilot/storepilot/internal/store"
)

const maxTurnBodySize = 10 << 20 // data URI image uploads get large

const maxSuggestedSteps = 4

// ShopInfoGetter reports the connected storefront's identity.
type ShopInfoGetter interface {
	GetShopInfo(ctx context.Context) (*shopify.ShopInfo, error)
}

// StepSuggester produces next-step suggestions from a store status summary.
type StepSuggester interface {
	SuggestNextSteps(ctx context.Context, in llm.NextStepsInput) (*llm.NextStepsResult, error)
}

type Deps struct {
	Sessions  *chat.SessionStore
	Store     *store.Store
	Shop      ShopInfoGetter
	Suggester StepSuggester
}

// New builds the HTTP API handler.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/sessions", handleCreateSession(deps))
	r.Get("/api/sessions/{id}/messages", handleListMessages(deps))
	r.Post("/api/sessions/{id}/messages", handleSendMessage(deps))
	r.Post("/api/sessions/{id}/actions", handleAction(deps))
	r.Get("/api/shop", handleShopInfo(deps))
	r.Get("/api/suggestions", handleSuggestions(deps))
	r.Get("/api/products", handleListProducts(deps))
	r.Get("/api/orders", handleListOrders(deps))
	r.Get("/api/analytics", handleAnalytics(deps))

	return r
}

func handleCreateSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := deps.Sessions.Create()
		writeJSON(w, http.StatusCreated, map[string]any{
			"sessionId": s.ID,
			"messages":  s.Messages(),
		})
	}
}

func handleListMessages(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := deps.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": s.Messages()})
	}
}

func handleSendMessage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := deps.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxTurnBodySize)
		defer r.Body.Close()

		var in chat.TurnInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		in.ActionID = ""

		result := s.Submit(r.Context(), in)
		writeJSON(w, http.StatusOK, map[string]any{
			"notice":   result.Notice,
			"messages": s.Messages(),
		})
	}
}

func handleAction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := deps.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}

		var in struct {
			ActionID string `json:"actionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		if in.ActionID == "" {
			httpError(w, http.StatusBadRequest, "actionId is required")
			return
		}

		result := s.Submit(r.Context(), chat.TurnInput{ActionID: in.ActionID})
		writeJSON(w, http.StatusOK, map[string]any{
			"notice":   result.Notice,
			"messages": s.Messages(),
		})
	}
}

func handleShopInfo(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := deps.Shop.GetShopInfo(r.Context())
		if err != nil {
			var confErr *shopify.ConfigurationError
			if errors.As(err, &confErr) {
				httpError(w, http.StatusServiceUnavailable,
					"Could not retrieve Shopify store information. Ensure .env variables are correct and client initialized.")
				return
			}
			httpError(w, http.StatusBadGateway, "Failed to connect to Shopify: %v. Check .env, API access, and connectivity.", err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func handleSuggestions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := deps.Suggester.SuggestNextSteps(r.Context(), llm.NextStepsInput{
			StoreStatus:    deps.Store.StatusSummary(),
			RecentActivity: "Browsing the admin dashboard.",
		})
		if err != nil {
			httpError(w, http.StatusBadGateway, "could not generate suggestions: %v", err)
			return
		}

		steps := result.SuggestedSteps
		if len(steps) > maxSuggestedSteps {
			steps = steps[:maxSuggestedSteps]
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestedSteps": steps})
	}
}

func handleListProducts(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"products": deps.Store.Products()})
	}
}

func handleListOrders(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"orders": deps.Store.Orders()})
	}
}

func handleAnalytics(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Store.Analytics())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func httpError(w http.ResponseWriter, code int, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{"message": fmt.Sprintf(format, args...)},
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
