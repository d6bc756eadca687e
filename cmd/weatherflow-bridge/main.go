package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"weatherflow-bridge/config"
	"weatherflow-bridge/internal/api"
	"weatherflow-bridge/internal/coordinator"
	"weatherflow-bridge/internal/mqtt"
	"weatherflow-bridge/internal/station"
	"weatherflow-bridge/internal/weather"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weatherflow-bridge",
		Short: "WeatherFlow weather entity bridge",
		Long:  "Adapts WeatherFlow station telemetry into Home Assistant weather entities over MQTT",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(testCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the bridge",
		Long:  "Subscribe to the station topics, publish weather entities, and serve the local API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			observations := &coordinator.Observations{}
			forecasts := &coordinator.Forecasts{}
			entities := weather.DefaultEntities(observations, forecasts, cfg.Units.Metric)

			// Station source feeds the coordinators.
			source := mqtt.NewSource(mqtt.SourceConfig{
				Broker:       cfg.MQTT.Broker,
				ClientID:     cfg.MQTT.ClientID + "-source",
				Username:     cfg.MQTT.Username,
				Password:     cfg.MQTT.Password,
				StationTopic: cfg.Station.Topic,
				Observations: observations,
				Forecasts:    forecasts,
			})
			if err := source.Start(); err != nil {
				return fmt.Errorf("failed to connect station source: %w", err)
			}
			defer source.Close()

			publisher, err := mqtt.NewPublisher(mqtt.PublisherConfig{
				Broker:      cfg.MQTT.Broker,
				ClientID:    cfg.MQTT.ClientID,
				Username:    cfg.MQTT.Username,
				Password:    cfg.MQTT.Password,
				TopicPrefix: cfg.MQTT.TopicPrefix,
				StationName: cfg.Station.Name,
				Enabled:     cfg.MQTT.Enabled,
			})
			if err != nil {
				log.Printf("Warning: MQTT connection failed: %v", err)
				publisher = &mqtt.Publisher{}
			} else if cfg.MQTT.Enabled {
				log.Printf("MQTT connected to %s", cfg.MQTT.Broker)
				if err := publisher.PublishDiscovery(entities); err != nil {
					log.Printf("Warning: discovery publish failed: %v", err)
				}
			}
			defer publisher.Close()

			// Re-publish every entity whenever either coordinator updates.
			republish := func() {
				for _, e := range entities {
					if err := publisher.PublishEntity(e); err != nil {
						log.Printf("Error publishing entity %s: %v", e.Description.Key, err)
					}
				}
			}
			observations.Subscribe(republish)
			forecasts.Subscribe(republish)

			if cfg.API.Enabled {
				server := api.NewServer(api.ServerConfig{
					Port:         cfg.API.Port,
					Observations: observations,
					Forecasts:    forecasts,
					Entities:     entities,
				})

				go func() {
					if err := server.Start(); err != nil {
						log.Printf("API server error: %v", err)
					}
				}()
				defer server.Stop(context.Background())
			}

			log.Println("WeatherFlow bridge started. Press Ctrl+C to stop.")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			log.Println("Shutting down...")

			return nil
		},
	}
}

func projectCmd() *cobra.Command {
	var obsFile, forecastFile string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project station snapshots once",
		Long:  "Read station snapshot JSON files and print the adapted entity payloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			observations := &coordinator.Observations{}
			forecasts := &coordinator.Forecasts{}
			entities := weather.DefaultEntities(observations, forecasts, cfg.Units.Metric)

			if obsFile != "" {
				raw, err := os.ReadFile(obsFile)
				if err != nil {
					return fmt.Errorf("failed to read observation file: %w", err)
				}
				var obs station.Observation
				if err := json.Unmarshal(raw, &obs); err != nil {
					return fmt.Errorf("failed to decode observation: %w", err)
				}
				observations.Set(&obs)
			}

			if forecastFile != "" {
				raw, err := os.ReadFile(forecastFile)
				if err != nil {
					return fmt.Errorf("failed to read forecast file: %w", err)
				}
				var bundle station.ForecastBundle
				if err := json.Unmarshal(raw, &bundle); err != nil {
					return fmt.Errorf("failed to decode forecast: %w", err)
				}
				forecasts.Set(&bundle)
			}

			states := make([]weather.EntityState, 0, len(entities))
			for _, e := range entities {
				states = append(states, e.State())
			}

			output, _ := json.MarshalIndent(states, "", "  ")
			fmt.Println(string(output))

			return nil
		},
	}

	cmd.Flags().StringVar(&obsFile, "observation", "", "observation snapshot JSON file")
	cmd.Flags().StringVar(&forecastFile, "forecast", "", "forecast snapshot JSON file")

	return cmd
}

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the MQTT broker connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Printf("Testing connection to %s...\n", cfg.MQTT.Broker)

			publisher, err := mqtt.NewPublisher(mqtt.PublisherConfig{
				Broker:      cfg.MQTT.Broker,
				ClientID:    cfg.MQTT.ClientID + "-test",
				Username:    cfg.MQTT.Username,
				Password:    cfg.MQTT.Password,
				TopicPrefix: cfg.MQTT.TopicPrefix,
				StationName: cfg.Station.Name,
				Enabled:     true,
			})
			if err != nil {
				fmt.Printf("Connection FAILED: %v\n", err)
				return err
			}
			defer publisher.Close()

			fmt.Println("Connection SUCCESS!")
			return nil
		},
	}
}
