package observer

import (
	"context"
	"encoding/json"
)

type Broadcaster interface {
	Broadcast(data []byte)
}

type liveMessage struct {
	Type    string `json:"type"`
	Version uint64 `json:"version"`
}

// LiveUpdates tells every connected websocket client that the store changed
// so dashboards can refetch.
type LiveUpdates struct {
	*coalescer

	source Source
	hub    Broadcaster
}

func NewLiveUpdates(source Source, hub Broadcaster) *LiveUpdates {
	l := &LiveUpdates{source: source, hub: hub}
	l.coalescer = newCoalescer("live", l.push)
	return l
}

func (l *LiveUpdates) push(ctx context.Context) error {
	b, err := json.Marshal(liveMessage{Type: "changed", Version: l.source.Version()})
	if err != nil {
		return err
	}

	l.hub.Broadcast(b)
	return nil
}
