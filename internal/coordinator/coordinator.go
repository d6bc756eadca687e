// Package coordinator holds the latest station snapshots and fans updates
// out to listeners. It never acquires data itself; whatever feeds it (MQTT
// source, CLI one-shot) owns transport and cadence.
package coordinator

import (
	"log"
	"sync"
	"time"

	"weatherflow-bridge/internal/station"
)

// Listener is invoked after a coordinator swaps in a new snapshot or
// records a failed update. Listeners run synchronously on the updating
// goroutine and must not block.
type Listener func()

// Observations holds the latest current-conditions snapshot.
type Observations struct {
	mu        sync.RWMutex
	data      *station.Observation
	success   bool
	updatedAt time.Time
	listeners []Listener
}

// Forecasts holds the latest forecast document.
type Forecasts struct {
	mu        sync.RWMutex
	data      *station.ForecastBundle
	success   bool
	updatedAt time.Time
	listeners []Listener
}

func (c *Observations) Set(data *station.Observation) {
	c.mu.Lock()
	c.data = data
	c.success = true
	c.updatedAt = time.Now()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners)
}

// MarkFailed records a failed refresh without discarding the last good
// snapshot.
func (c *Observations) MarkFailed(err error) {
	c.mu.Lock()
	c.success = false
	listeners := c.listeners
	c.mu.Unlock()

	log.Printf("observation update failed: %v", err)
	notify(listeners)
}

func (c *Observations) Data() *station.Observation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *Observations) LastUpdateSuccess() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.success
}

func (c *Observations) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

func (c *Observations) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Forecasts) Set(data *station.ForecastBundle) {
	c.mu.Lock()
	c.data = data
	c.success = true
	c.updatedAt = time.Now()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners)
}

func (c *Forecasts) MarkFailed(err error) {
	c.mu.Lock()
	c.success = false
	listeners := c.listeners
	c.mu.Unlock()

	log.Printf("forecast update failed: %v", err)
	notify(listeners)
}

func (c *Forecasts) Data() *station.ForecastBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *Forecasts) LastUpdateSuccess() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.success
}

func (c *Forecasts) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

func (c *Forecasts) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func notify(listeners []Listener) {
	for _, l := range listeners {
		l()
	}
}
