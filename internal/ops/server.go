// Package ops — служебный HTTP-сервер: проверка живости и метрики.
// Живёт на отдельном порту, наружу не публикуется.
package ops

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Spok95/school-attendance/internal/metrics"
)

type Server struct {
	srv *http.Server
}

// Start поднимает /healthz (с ping БД) и /metrics на addr и сам гасит
// сервер при отмене ctx.
func Start(ctx context.Context, addr string, db *sql.DB) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := db.PingContext(pingCtx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		_ = srv.ListenAndServe() // закрываем аккуратно при Shutdown
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &Server{srv: srv}
}
