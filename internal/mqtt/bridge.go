package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 5 * time.Second
	// connectBackoff is how long a failed connect suppresses further attempts.
	connectBackoff = 30 * time.Second
	queueSize      = 64
)

type signal struct {
	topic   string
	payload any
}

// Bridge publishes LED, buzzer and chrono-color signals for the physical
// room hardware. Publishes are queued and drained on a dedicated goroutine so
// a missing broker, a failed connect or a dropped publish never blocks the
// game; at worst a signal is logged and lost.
type Bridge struct {
	broker string
	prefix string
	queue  chan signal

	mu        sync.Mutex
	client    paho.Client
	nextRetry time.Time
}

func NewBridge(broker, prefix string) *Bridge {
	b := &Bridge{
		broker: broker,
		prefix: prefix,
		queue:  make(chan signal, queueSize),
	}
	go b.run()
	return b
}

func (b *Bridge) run() {
	for sig := range b.queue {
		client := b.ensure()
		if client == nil {
			continue
		}
		data, err := json.Marshal(sig.payload)
		if err != nil {
			continue
		}
		// Fire-and-forget: the token is deliberately not waited on.
		client.Publish(fmt.Sprintf("%s/%s", b.prefix, sig.topic), 1, false, data)
	}
}

// ensure lazily connects on first use. Returns nil when the broker is
// unreachable; callers treat that as "no sink". Failed connects back off so
// the drain loop does not hammer a dead broker.
func (b *Bridge) ensure() paho.Client {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client != nil && b.client.IsConnected() {
		return b.client
	}
	if time.Now().Before(b.nextRetry) {
		return nil
	}

	opts := paho.NewClientOptions().
		AddBroker(b.broker).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)
	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) || token.Error() != nil {
		log.Printf("mqtt: connect to %s failed: %v", b.broker, token.Error())
		b.nextRetry = time.Now().Add(connectBackoff)
		return nil
	}
	b.client = client
	return b.client
}

// publish enqueues a signal; when the queue is full the signal is dropped.
func (b *Bridge) publish(topic string, payload any) {
	select {
	case b.queue <- signal{topic: topic, payload: payload}:
	default:
	}
}

func (b *Bridge) SetLED(roomCode string, on bool) {
	b.publish(roomCode+"/led", map[string]bool{"on": on})
}

func (b *Bridge) Buzz(roomCode string, durationMS int) {
	b.publish(roomCode+"/buzzer", map[string]int{"beep_ms": durationMS})
}

func (b *Bridge) SetChronoColor(roomCode string, color string) {
	b.publish(roomCode+"/chrono", map[string]string{"color": color})
}

// NoopBridge satisfies the signal interface when MQTT is disabled.
type NoopBridge struct{}

func (NoopBridge) SetLED(string, bool)           {}
func (NoopBridge) Buzz(string, int)              {}
func (NoopBridge) SetChronoColor(string, string) {}
