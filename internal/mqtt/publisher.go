package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"weatherflow-bridge/internal/weather"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	stationName string
	enabled     bool
}

type PublisherConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	StationName string
	Enabled     bool
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return &Publisher{enabled: false}, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			log.Println("MQTT connected")
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		stationName: cfg.StationName,
		enabled:     true,
	}, nil
}

// PublishEntity publishes the entity's condition to its state topic and the
// full attribute payload, forecast included, retained on its attributes
// topic.
func (p *Publisher) PublishEntity(e *weather.Entity) error {
	if !p.enabled {
		return nil
	}

	state := e.State()

	stateValue := ""
	if state.Condition != nil {
		stateValue = string(*state.Condition)
	}

	stateTopic := fmt.Sprintf("%s/%s/state", p.topicPrefix, state.Key)
	token := p.client.Publish(stateTopic, 0, false, stateValue)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish state: %w", token.Error())
	}

	attrJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	attrTopic := fmt.Sprintf("%s/%s/attributes", p.topicPrefix, state.Key)
	token = p.client.Publish(attrTopic, 0, true, attrJSON)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish attributes: %w", token.Error())
	}

	return nil
}

// discoveryTopic is where Home Assistant expects the entity's discovery
// config.
func discoveryTopic(key string) string {
	return fmt.Sprintf("homeassistant/sensor/weatherflow/%s/config", key)
}

// discoveryConfig builds the discovery payload describing one entity:
// state and attribute topics plus the shared station device block.
func discoveryConfig(topicPrefix, stationName string, e *weather.Entity) map[string]interface{} {
	return map[string]interface{}{
		"name":                  fmt.Sprintf("%s %s", stationName, e.Description.Name),
		"unique_id":             fmt.Sprintf("weatherflow_%s", e.Description.Key),
		"state_topic":           fmt.Sprintf("%s/%s/state", topicPrefix, e.Description.Key),
		"json_attributes_topic": fmt.Sprintf("%s/%s/attributes", topicPrefix, e.Description.Key),
		"device": map[string]interface{}{
			"identifiers":  []string{"weatherflow_station"},
			"name":         stationName,
			"manufacturer": "WeatherFlow",
			"model":        "Tempest",
		},
	}
}

// PublishDiscovery announces both weather entities to Home Assistant so
// they show up without manual configuration.
func (p *Publisher) PublishDiscovery(entities []*weather.Entity) error {
	if !p.enabled {
		return nil
	}

	for _, e := range entities {
		payload, _ := json.Marshal(discoveryConfig(p.topicPrefix, p.stationName, e))
		token := p.client.Publish(discoveryTopic(e.Description.Key), 0, true, payload)
		token.Wait()
		if token.Error() != nil {
			return fmt.Errorf("failed to publish discovery for %s: %w", e.Description.Key, token.Error())
		}
	}

	return nil
}

func (p *Publisher) IsConnected() bool {
	if !p.enabled {
		return false
	}
	return p.client.IsConnected()
}

func (p *Publisher) Close() {
	if p.enabled && p.client != nil {
		p.client.Disconnect(1000)
	}
}
