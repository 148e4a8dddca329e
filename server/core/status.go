package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// PlayerInfo is the status API view of one player.
type PlayerInfo struct {
	NetworkID uint    `json:"networkId"`
	Name      string  `json:"name"`
	Health    uint32  `json:"health"`
	MaxHealth uint32  `json:"maxHealth"`
	State     string  `json:"state"`
	Grounded  bool    `json:"grounded"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type statusResponse struct {
	Status     string `json:"status"`
	Name       string `json:"name"`
	Level      string `json:"level"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	TickRate   int    `json:"tickRate"`
}

type damageRequest struct {
	Amount   uint32 `json:"amount"`
	Attacker uint   `json:"attacker"`
}

// Players returns a snapshot of every joined player ordered by network id.
func (s *Server) Players() []PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PlayerInfo, 0, len(s.players))
	for _, p := range s.players {
		feet := p.Feet()
		out = append(out, PlayerInfo{
			NetworkID: uint(p.NetworkID),
			Name:      p.Name,
			Health:    p.Health.Health(),
			MaxHealth: p.Health.Max(),
			State:     p.StateID().String(),
			Grounded:  p.Grounded(),
			X:         feet.X,
			Y:         feet.Y,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NetworkID < out[j].NetworkID })
	return out
}

// StatusHandler builds the HTTP status and admin API.
func (s *Server) StatusHandler() http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/players", func(sub chi.Router) {
		sub.Get("/", s.handleListPlayers)
		sub.Post("/{id}/damage", s.handleDamage)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:     "ok",
		Name:       s.cfg.Name,
		Level:      s.level.Name,
		Players:    s.PlayerCount(),
		MaxPlayers: s.cfg.MaxPlayers,
		TickRate:   s.cfg.TickRate,
	})
}

func (s *Server) handleListPlayers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Players())
}

func (s *Server) handleDamage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	var req damageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Amount == 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := s.QueueDamage(uint(id), req.Amount, req.Attacker); err != nil {
		if errors.Is(err, ErrUnknownPlayer) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
