package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"weatherflow-bridge/internal/coordinator"
	"weatherflow-bridge/internal/station"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Source subscribes to the station's raw JSON topics and feeds the
// coordinators. It is the only inbound path; the coordinators themselves
// never fetch anything.
type Source struct {
	client       mqtt.Client
	broker       string
	clientID     string
	username     string
	password     string
	stationTopic string
	observations *coordinator.Observations
	forecasts    *coordinator.Forecasts
}

type SourceConfig struct {
	Broker       string
	ClientID     string
	Username     string
	Password     string
	StationTopic string
	Observations *coordinator.Observations
	Forecasts    *coordinator.Forecasts
}

func NewSource(cfg SourceConfig) *Source {
	return &Source{
		broker:       cfg.Broker,
		clientID:     cfg.ClientID,
		username:     cfg.Username,
		password:     cfg.Password,
		stationTopic: cfg.StationTopic,
		observations: cfg.Observations,
		forecasts:    cfg.Forecasts,
	}
}

// clientOptions wires subscribe as the on-connect handler: the session is
// clean, so the broker forgets the subscriptions on every disconnect and
// they must be re-established after each reconnect, not just the first.
func (s *Source) clientOptions() *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(s.broker).
		SetClientID(s.clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			log.Printf("MQTT station source connection lost: %v", err)
		}).
		SetOnConnectHandler(s.subscribe)

	if s.username != "" {
		opts.SetUsername(s.username)
		opts.SetPassword(s.password)
	}

	return opts
}

// Start connects to the broker; the on-connect handler takes care of the
// subscriptions from there on.
func (s *Source) Start() error {
	client := mqtt.NewClient(s.clientOptions())
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	s.client = client
	return nil
}

func (s *Source) subscribe(c mqtt.Client) {
	obsTopic := fmt.Sprintf("%s/observation", s.stationTopic)
	token := c.Subscribe(obsTopic, 0, func(c mqtt.Client, msg mqtt.Message) {
		s.handleObservation(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		s.observations.MarkFailed(fmt.Errorf("subscribe %s: %w", obsTopic, token.Error()))
	}

	fcTopic := fmt.Sprintf("%s/forecast", s.stationTopic)
	token = c.Subscribe(fcTopic, 0, func(c mqtt.Client, msg mqtt.Message) {
		s.handleForecast(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		s.forecasts.MarkFailed(fmt.Errorf("subscribe %s: %w", fcTopic, token.Error()))
	}

	log.Printf("Subscribed to station topics under %s", s.stationTopic)
}

// handleObservation decodes one observation document. Malformed payloads
// mark the coordinator failed and keep the last good snapshot.
func (s *Source) handleObservation(payload []byte) {
	var obs station.Observation
	if err := json.Unmarshal(payload, &obs); err != nil {
		s.observations.MarkFailed(fmt.Errorf("decode observation: %w", err))
		return
	}
	s.observations.Set(&obs)
}

func (s *Source) handleForecast(payload []byte) {
	var bundle station.ForecastBundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		s.forecasts.MarkFailed(fmt.Errorf("decode forecast: %w", err))
		return
	}
	s.forecasts.Set(&bundle)
}

func (s *Source) Close() {
	if s.client != nil {
		s.client.Disconnect(1000)
	}
}
