package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 2 * time.Second

// Publisher is the part of a redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// NewRedisClient connects to addr and checks it answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Message is the JSON published for every toast.
type Message struct {
	Session string    `json:"session"`
	Screen  string    `json:"screen"`
	Kind    Kind      `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// RedisNotifier publishes toasts on "<prefix>:<screen>".
type RedisNotifier struct {
	pub     Publisher
	channel string
	screen  string
	session string
}

// NewRedisNotifier creates a notifier for one mounted screen.
func NewRedisNotifier(pub Publisher, prefix, screen, session string) *RedisNotifier {
	return &RedisNotifier{
		pub:     pub,
		channel: Channel(prefix, screen),
		screen:  screen,
		session: session,
	}
}

// Channel returns the pub/sub channel for a screen.
func Channel(prefix, screen string) string {
	return prefix + ":" + screen
}

func (n *RedisNotifier) ShowSuccess(message string) { n.publish(KindSuccess, message) }
func (n *RedisNotifier) ShowError(message string)   { n.publish(KindError, message) }

// publish is best effort; a failed publish is logged and dropped.
func (n *RedisNotifier) publish(kind Kind, message string) {
	payload, err := json.Marshal(Message{
		Session: n.session,
		Screen:  n.screen,
		Kind:    kind,
		Message: message,
		At:      time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode toast")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := n.pub.Publish(ctx, n.channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("channel", n.channel).Msg("failed to publish toast")
	}
}
