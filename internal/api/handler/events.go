package handler

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
)

// Events mantém a conexão aberta e repassa ao cliente todos os eventos
// publicados no hub (bipagens, encerramento de dia, lotes atualizados).
// A rota é pública porque os painéis de TV do galpão não autenticam.
func EventStream(hub *sse.Hub) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado", nil)
			return
		}

		events, cancel := hub.Subscribe()
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, open := <-events:
				if !open {
					return
				}

				data, err := json.Marshal(event.Data)
				if err != nil {
					logrus.WithError(err).WithField("event", event.Name).Error("Erro ao serializar evento")
					continue
				}

				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
				flusher.Flush()
			}
		}
	})
}
