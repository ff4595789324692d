package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dyluth/goap/pkg/goap"
	"github.com/redis/go-redis/v9"
)

// Client provides instance-scoped Redis operations for the decision journal.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a new journal client for the specified instance.
// Returns an error if instanceName is not a valid instance name.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if err := ValidateInstanceName(instanceName); err != nil {
		return nil, err
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// NewClientFromURL parses a redis:// URL and creates a client for instanceName.
func NewClientFromURL(redisURL, instanceName string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewClient(opts, instanceName)
}

// InstanceName returns the namespace this client reads and writes.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Write stores a record, adds it to its agent's timeline and publishes it on
// goap:{instance}:decision_events. The record is validated first.
func (c *Client) Write(ctx context.Context, r *goap.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	hash, err := RecordToHash(r)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, RecordKey(c.instanceName, r.ID), hash)
		pipe.ZAdd(ctx, TimelineKey(c.instanceName, r.Agent), redis.Z{
			Score:  TimelineScore(r.Tick),
			Member: r.ID,
		})
		pipe.SAdd(ctx, AgentsKey(c.instanceName), r.Agent.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write record to Redis: %w", err)
	}

	recordJSON, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record for event: %w", err)
	}

	if err := c.rdb.Publish(ctx, DecisionEventsChannel(c.instanceName), recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish decision event: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by ID.
// Returns (nil, redis.Nil) if the record doesn't exist. Use IsNotFound to check.
func (c *Client) GetRecord(ctx context.Context, recordID string) (*goap.Record, error) {
	hashData, err := c.rdb.HGetAll(ctx, RecordKey(c.instanceName, recordID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read record from Redis: %w", err)
	}

	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	r, err := HashToRecord(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize record: %w", err)
	}

	return r, nil
}

// Latest returns the agent's most recent record.
// Returns (nil, redis.Nil) if the agent has no recorded decisions.
func (c *Client) Latest(ctx context.Context, agent goap.EntityID) (*goap.Record, error) {
	results, err := c.rdb.ZRevRange(ctx, TimelineKey(c.instanceName, agent), 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}
	if len(results) == 0 {
		return nil, redis.Nil
	}
	return c.GetRecord(ctx, results[0])
}

// History returns up to limit of the agent's most recent records, oldest first.
// A limit below one returns the whole timeline.
func (c *Client) History(ctx context.Context, agent goap.EntityID, limit int) ([]*goap.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := c.rdb.ZRevRange(ctx, TimelineKey(c.instanceName, agent), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}

	records := make([]*goap.Record, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		r, err := c.GetRecord(ctx, ids[i])
		if IsNotFound(err) {
			// timeline outlived its record
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// Agents returns every agent with at least one recorded decision, sorted.
func (c *Client) Agents(ctx context.Context) ([]goap.EntityID, error) {
	members, err := c.rdb.SMembers(ctx, AgentsKey(c.instanceName)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read agent index: %w", err)
	}

	agents := make([]goap.EntityID, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid agent id %q in index: %w", m, err)
		}
		agents = append(agents, goap.EntityID(id))
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i] < agents[j] })
	return agents, nil
}

// Reset deletes every key of the instance and returns how many were removed.
// Ticks and entity IDs restart at 1 on every simulation run, so a run must
// start from an empty journal or its timelines merge with the previous run's.
func (c *Client) Reset(ctx context.Context) (int, error) {
	iter := c.rdb.Scan(ctx, 0, InstancePattern(c.instanceName), 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan instance keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("failed to delete instance keys: %w", err)
	}
	log.Printf("[Journal] Cleared %d keys from instance '%s'", len(keys), c.instanceName)
	return len(keys), nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// ScanRecords returns the IDs of every record whose ID starts with prefix,
// sorted. It uses SCAN so large journals do not block the server. The prefix
// is matched literally.
func (c *Client) ScanRecords(ctx context.Context, prefix string) ([]string, error) {
	keyPrefix := RecordKey(c.instanceName, "")
	iter := c.rdb.Scan(ctx, 0, keyPrefix+globEscaper.Replace(prefix)+"*", 0).Iterator()

	var ids []string
	for iter.Next(ctx) {
		id := strings.TrimPrefix(iter.Val(), keyPrefix)
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Subscription represents an active Pub/Sub subscription to decision events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *goap.Record
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of decision records.
// The channel will be closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *goap.Record {
	return s.events
}

// Errors returns the channel of non-fatal subscription errors.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeDecisions subscribes to decision events for this instance.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once, so a slow subscriber may miss decisions.
func (c *Client) SubscribeDecisions(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, DecisionEventsChannel(c.instanceName))

	// confirm before returning so the caller's next Write is delivered
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to decision events: %w", err)
	}

	eventsChan := make(chan *goap.Record, 10)
	errorsChan := make(chan error, 10)
	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var r goap.Record
				if err := json.Unmarshal([]byte(msg.Payload), &r); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal decision event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &r:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
