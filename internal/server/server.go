package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/entity/user"
	"max.ks1230/expense-service/internal/logger"
	"max.ks1230/expense-service/internal/model/expenses"
)

const shutdownTimeout = 5 * time.Second

type authService interface {
	Register(ctx context.Context, username, password string) (user.Account, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (int64, error)
}

type expenseService interface {
	List(ctx context.Context, ownerID int64, filter expenses.ListFilter) ([]expense.Record, error)
	Get(ctx context.Context, ownerID, id int64) (expense.Record, error)
	Create(ctx context.Context, ownerID int64, in expenses.NewExpense) (expense.Record, error)
	Update(ctx context.Context, ownerID, id int64, patch expense.Patch) (expense.Record, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Stats(ctx context.Context, ownerID int64) (expense.Summary, error)
}

type config interface {
	Port() int
}

// Server is the HTTP boundary: it authenticates the caller, validates the
// request shape and hands normalized values to the expense model.
type Server struct {
	auth     authService
	expenses expenseService
	srv      *http.Server
}

func New(cfg config, auth authService, expenses expenseService) *Server {
	s := &Server{
		auth:     auth,
		expenses: expenses,
	}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port()),
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.instrument("register", s.handleRegister))
	mux.HandleFunc("POST /auth/login", s.instrument("login", s.handleLogin))

	mux.HandleFunc("GET /api/expenses", s.instrument("listExpenses", s.withAuth(s.handleList)))
	mux.HandleFunc("GET /api/expenses/stats", s.instrument("expenseStats", s.withAuth(s.handleStats)))
	mux.HandleFunc("GET /api/expenses/{id}", s.instrument("getExpense", s.withAuth(s.handleGet)))
	mux.HandleFunc("POST /api/expenses", s.instrument("createExpense", s.withAuth(s.handleCreate)))
	mux.HandleFunc("PUT /api/expenses/{id}", s.instrument("updateExpense", s.withAuth(s.handleUpdate)))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.instrument("deleteExpense", s.withAuth(s.handleDelete)))

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// ListenAndServe blocks until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()
	logger.Info("http server listening", zap.String("addr", s.srv.Addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	logger.Info("http server stopped")
	return err
}
