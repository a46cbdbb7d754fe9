package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubPublishEntregaParaTodosAssinantes(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe()
	defer cancel1()
	ch2, cancel2 := hub.Subscribe()
	defer cancel2()

	hub.Publish(Event{Name: "pacoteRegistrado", Data: map[string]string{"mesaId": "M1"}})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "pacoteRegistrado", ev.Name)
		case <-time.After(time.Second):
			t.Fatal("evento não entregue ao assinante")
		}
	}
}

func TestHubCancelRemoveAssinante(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	assert.Equal(t, 1, hub.Len())

	cancel()
	assert.Equal(t, 0, hub.Len())

	_, open := <-ch
	assert.False(t, open)

	// cancelar duas vezes não deve entrar em pânico
	cancel()
}

func TestHubPublishNaoBloqueiaComAssinanteLento(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish(Event{Name: "diaEncerrado"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish bloqueou com assinante lento")
	}
}

func TestHubPublishSemAssinantes(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Publish(Event{Name: "jobUpdated"})
	})
}
