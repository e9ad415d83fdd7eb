package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/figmajson/pkg/dump"
	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/message"
)

// maxBodySize bounds a posted message.
const maxBodySize = 64 << 20

const shutdownTimeout = 5 * time.Second

type handler struct {
	d      *Dispatcher
	logger *log.Logger
}

// NewRouter returns the HTTP API of d:
//
//	GET  /healthz    liveness
//	POST /messages   handle one message, reply {"messages": [...]}
//	GET  /selection  dump of the current selection
//	GET  /clipboard  clipboard entries, newest first
func NewRouter(d *Dispatcher) http.Handler {
	h := &handler{d: d, logger: d.opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.health)
	r.Post("/messages", h.messages)
	r.Get("/selection", h.selection)
	r.Get("/clipboard", h.clipboard)
	return r
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, d *Dispatcher) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		d.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) messages(w http.ResponseWriter, r *http.Request) {
	var msg message.Message
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&msg); err != nil {
		h.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode message"))
		return
	}

	replies, err := h.d.Handle(r.Context(), msg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if replies == nil {
		replies = []message.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": replies})
}

func (h *handler) selection(w http.ResponseWriter, r *http.Request) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	doc, err := dump.Dump(r.Context(), h.d.scene, h.d.scene.Selection(), h.d.opts.Dump)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *handler) clipboard(w http.ResponseWriter, r *http.Request) {
	if h.d.opts.Clipboard == nil {
		h.writeError(w, errors.New(errors.ErrCodeNotFound, "clipboard is disabled"))
		return
	}
	entries, err := h.d.opts.Clipboard.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}

// statusFor maps an error to a response status. Errors that abort a whole
// insert are reported as 422.
func statusFor(err error) int {
	if errors.IsFatal(err) {
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGeometry:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeComponentNotFound, errors.ErrCodeStyleNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
