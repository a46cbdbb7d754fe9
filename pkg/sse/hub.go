// Package sse gerencia as conexões de Server-Sent Events abertas contra a API.
// O registro de assinantes é explícito e protegido por mutex; a entrega é
// melhor-esforço, sem replay para clientes desconectados.
package sse

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Event é um evento nomeado entregue a todos os assinantes conectados
type Event struct {
	Name string
	Data any
}

// Publisher é a visão de escrita do hub, consumida pelos usecases
type Publisher interface {
	Publish(event Event)
}

const subscriberBuffer = 16

// Hub mantém a coleção de assinantes ativos. Assinantes entram na conexão e
// saem no encerramento; um assinante lento tem eventos descartados em vez de
// bloquear o publicador.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan Event),
	}
}

// Subscribe registra um novo assinante e devolve o canal de eventos junto com
// a função de cancelamento, que deve ser chamada quando a conexão fechar.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Publish entrega o evento a todos os assinantes sem bloquear. Canal cheio
// significa cliente lento: o evento é descartado para aquele assinante.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subs {
		select {
		case sub <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"evento":     event.Name,
				"assinante":  id,
				"descartado": true,
			}).Debug("Assinante SSE lento, evento descartado")
		}
	}
}

// Len informa quantos assinantes estão conectados
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}
