// Package metrics counts gameplay events with Prometheus and can expose
// them on an HTTP listener. A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/periodica/internal/game"
)

const namespace = "periodica"

// Game outcomes.
const (
	OutcomeVictory = "victory"
	OutcomeTimeUp  = "time_up"
	OutcomeQuit    = "quit"
)

// Metrics holds the gameplay collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	games     *prometheus.CounterVec
	rooms     *prometheus.CounterVec
	clues     *prometheus.CounterVec
	answers   *prometheus.CounterVec
	roomTime  *prometheus.HistogramVec
	lastScore prometheus.Gauge
}

// New creates the collectors and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Finished games by difficulty and outcome",
		}, []string{"difficulty", "outcome"}),
		rooms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_completed_total",
			Help:      "Rooms solved by difficulty",
		}, []string{"difficulty"}),
		clues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clues_unlocked_total",
			Help:      "Clues bought by clue type",
		}, []string{"type"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Submitted answers by result",
		}, []string{"result"}),
		roomTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "room_seconds",
			Help:      "Seconds spent in a room before solving it",
			Buckets:   []float64{10, 20, 30, 45, 60, 90, 120, 180},
		}, []string{"difficulty"}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_score",
			Help:      "Score of the last finished game",
		}),
	}
	m.registry.MustRegister(m.games, m.rooms, m.clues, m.answers, m.roomTime, m.lastScore)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GameEnded counts a finished game. The score gauge moves on victory only.
func (m *Metrics) GameEnded(d game.Difficulty, outcome string, score int) {
	if m == nil {
		return
	}
	m.games.WithLabelValues(d.String(), outcome).Inc()
	if outcome == OutcomeVictory {
		m.lastScore.Set(float64(score))
	}
}

// RoomCompleted counts a solved room and observes its duration.
func (m *Metrics) RoomCompleted(d game.Difficulty, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rooms.WithLabelValues(d.String()).Inc()
	m.roomTime.WithLabelValues(d.String()).Observe(elapsed.Seconds())
}

// ClueUnlocked counts a bought clue.
func (m *Metrics) ClueUnlocked(t game.ClueType) {
	if m == nil {
		return
	}
	m.clues.WithLabelValues(string(t)).Inc()
}

// Answer counts a submitted answer.
func (m *Metrics) Answer(correct bool) {
	if m == nil {
		return
	}
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.answers.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on ln until ctx is done.
func (m *Metrics) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
