package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"smartpark/models"
)

// MirrorKey is the single key holding the JSON-serialized ledger.
const MirrorKey = "parkingReservations"

// MirrorChannel carries change notifications to other sessions.
const MirrorChannel = "parkingReservations:changed"

// Mirror is the persisted copy of the reservation ledger. It is a plain
// key-value snapshot used for reload and cross-session visibility, not a
// backend: every save overwrites the whole ledger and the last writer
// wins. There is no merge and no conflict detection.
type Mirror interface {
	Save(ctx context.Context, records []models.Reservation) error
	Load(ctx context.Context) ([]models.Reservation, error)
}

// RedisMirror stores the ledger under MirrorKey and publishes on
// MirrorChannel after every save so other sessions can refresh.
type RedisMirror struct {
	client *redis.Client
}

func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{client: client}
}

func (m *RedisMirror) Save(ctx context.Context, records []models.Reservation) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := m.client.Set(ctx, MirrorKey, payload, 0).Err(); err != nil {
		return err
	}
	// Notification is best effort: a dropped message is repaired by the
	// next save or the next full load.
	if err := m.client.Publish(ctx, MirrorChannel, "changed").Err(); err != nil {
		log.Printf("Failed to publish mirror change notification: %v", err)
	}
	return nil
}

func (m *RedisMirror) Load(ctx context.Context) ([]models.Reservation, error) {
	data, err := m.client.Get(ctx, MirrorKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var records []models.Reservation
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Watch reloads the ledger whenever another session saves the mirror.
// The refresh is eventually consistent; concurrent writers race and the
// last writer wins.
func (m *RedisMirror) Watch(ctx context.Context, ledger *Ledger) {
	sub := m.client.Subscribe(ctx, MirrorChannel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				if err := ledger.Reload(ctx); err != nil {
					log.Printf("Failed to reload reservation ledger from mirror: %v", err)
				}
			}
		}
	}()
}
