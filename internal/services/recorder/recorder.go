package recorder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"pizzeria/internal/logger"
	"pizzeria/internal/messaging"
)

// Recorder runs both event consumers and the HTTP listener until ctx ends
type Recorder struct {
	service      *Service
	orders       *messaging.Consumer
	reservations *messaging.Consumer
	server       *http.Server
	logger       *logger.Logger
}

// New wires a recorder. addr is the HTTP listen address, e.g. ":3000".
func New(service *Service, orders, reservations *messaging.Consumer, addr string, log *logger.Logger) *Recorder {
	handler := NewHandler(service, log)
	return &Recorder{
		service:      service,
		orders:       orders,
		reservations: reservations,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler.SetupRoutes(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Run blocks until ctx is cancelled or a component fails
func (r *Recorder) Run(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCanceled(r.orders.StartConsuming(ctx, r.service.HandleOrderFinalized))
	})
	g.Go(func() error {
		return ignoreCanceled(r.reservations.StartConsuming(ctx, r.service.HandleReservationConfirmed))
	})
	g.Go(func() error {
		r.logger.Info("service_started", "Order recorder listening", requestID, map[string]interface{}{
			"addr": r.server.Addr,
		})
		if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		r.logger.Info("graceful_shutdown", "Shutting down order recorder", requestID, nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		r.orders.Close()
		r.reservations.Close()
		return r.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
