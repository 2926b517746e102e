package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishEncodesEvent(t *testing.T) {
	hub := NewHub(nil)

	event := NewEvent(EventEntryCreated, "credit", "khzema", 42, "Credit added")
	hub.Publish(event)

	require.Len(t, hub.Broadcast, 1)
	msg := <-hub.Broadcast

	var decoded Event
	require.NoError(t, json.Unmarshal(msg, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, EventEntryCreated, decoded.Type)
	assert.Equal(t, "credit", decoded.Kind)
	assert.EqualValues(t, "khzema", decoded.StoreID)
	assert.Equal(t, int64(42), decoded.EntryID)
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	hub := NewHub(nil)

	for i := 0; i < broadcastBuffer+10; i++ {
		hub.Publish(NewEvent(EventStockUpdated, "inventory", "sahloul", int64(i), ""))
	}
	assert.Len(t, hub.Broadcast, broadcastBuffer)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a := NewEvent(EventEntryDeleted, "sale", "khzema", 1, "")
	b := NewEvent(EventEntryDeleted, "sale", "khzema", 1, "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHub_JoinAndLeaveAfterShutdown(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	left := make(chan struct{})
	go func() {
		assert.False(t, hub.Join(nil))
		hub.Leave(nil)
		close(left)
	}()

	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("connection handler blocked on a stopped hub")
	}
}
