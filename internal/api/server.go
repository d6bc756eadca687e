package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"weatherflow-bridge/internal/coordinator"
	"weatherflow-bridge/internal/weather"

	"github.com/gin-gonic/gin"
)

// Server exposes the adapted weather data over a read-only local API.
type Server struct {
	router       *gin.Engine
	server       *http.Server
	observations *coordinator.Observations
	forecasts    *coordinator.Forecasts
	entities     []*weather.Entity
	port         int
}

type ServerConfig struct {
	Port         int
	Observations *coordinator.Observations
	Forecasts    *coordinator.Forecasts
	Entities     []*weather.Entity
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:       router,
		observations: cfg.Observations,
		forecasts:    cfg.Forecasts,
		entities:     cfg.Entities,
		port:         cfg.Port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api/v1")
	{
		api.GET("/conditions", s.conditionsHandler)
		api.GET("/forecast/daily", s.forecastHandler(weather.HorizonDaily))
		api.GET("/forecast/hourly", s.forecastHandler(weather.HorizonHourly))
		api.GET("/entities", s.entitiesHandler)
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("API server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "healthy",
		"observations_ok":      s.observations.LastUpdateSuccess(),
		"forecasts_ok":         s.forecasts.LastUpdateSuccess(),
		"observations_updated": s.observations.UpdatedAt(),
		"forecasts_updated":    s.forecasts.UpdatedAt(),
		"timestamp":            time.Now(),
	})
}

func (s *Server) conditionsHandler(c *gin.Context) {
	if len(s.entities) == 0 || s.observations.Data() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "No data available yet",
		})
		return
	}

	// Both entities share the same current conditions; either view works.
	current := s.entities[0].CurrentConditions()
	c.JSON(http.StatusOK, gin.H{
		"condition":        current.Condition(),
		"temperature":      current.Temperature(),
		"temperature_unit": current.TemperatureUnit(),
		"humidity":         current.Humidity(),
		"pressure":         current.Pressure(),
		"wind_speed":       current.WindSpeed(),
		"wind_bearing":     current.WindBearing(),
		"visibility":       current.Visibility(),
	})
}

func (s *Server) forecastHandler(horizon weather.Horizon) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, e := range s.entities {
			if e.Horizon() != horizon {
				continue
			}
			entries := e.Forecast()
			if entries == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"error": "No data available yet",
				})
				return
			}
			c.JSON(http.StatusOK, entries)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "no entity for horizon"})
	}
}

func (s *Server) entitiesHandler(c *gin.Context) {
	states := make([]weather.EntityState, 0, len(s.entities))
	for _, e := range s.entities {
		states = append(states, e.State())
	}
	c.JSON(http.StatusOK, states)
}
