package rest

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

//go:embed views/*.html
var views embed.FS

//go:embed static
var static embed.FS

const indexTemplate = "index"

type gameService interface {
	GetGame(ctx context.Context, sessionID string) (*tictactoe.GameController, error)

	Play(ctx context.Context, sessionID string, cell int) (*tictactoe.GameController, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*tictactoe.GameController, error)
	ToggleOrder(ctx context.Context, sessionID string) (*tictactoe.GameController, error)
	Restart(ctx context.Context, sessionID string) (*tictactoe.GameController, error)
}

type Handler struct {
	logger *slog.Logger
	games  gameService
	render *render.Render
}

func NewHandler(logger *slog.Logger, games gameService) *Handler {
	return &Handler{
		logger: logger.With("component", "rest"),
		games:  games,
		render: render.New(render.Options{
			Directory:  "views",
			FileSystem: &render.EmbedFileSystem{FS: views},
			Extensions: []string{".html"},
		}),
	}
}

// Router wires the game endpoints. Every state change is a POST answered
// with a 303 redirect to the page.
func (that *Handler) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(that.logRequests)

	router.Get("/ping", that.Ping)

	staticFiles, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles))))

	router.Group(func(r chi.Router) {
		r.Use(that.withSession)

		r.Get("/", that.Index)
		r.Post("/play/{cell}", that.Play)
		r.Post("/jump/{move}", that.JumpTo)
		r.Post("/order", that.ToggleOrder)
		r.Post("/restart", that.Restart)
	})

	return router
}

func (that *Handler) Index(w http.ResponseWriter, r *http.Request) {
	controller, err := that.games.GetGame(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		that.fail(w, r, err)
		return
	}

	if err = that.render.HTML(w, http.StatusOK, indexTemplate, presenter.Build(controller)); err != nil {
		that.logger.Error("failed to render page", "error", err)
	}
}

func (that *Handler) Play(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		http.Error(w, "Invalid cell", http.StatusBadRequest)
		return
	}

	_, err = that.games.Play(r.Context(), sessionFrom(r.Context()), cell)
	that.redirect(w, r, err)
}

func (that *Handler) JumpTo(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(chi.URLParam(r, "move"))
	if err != nil {
		http.Error(w, "Invalid move", http.StatusBadRequest)
		return
	}

	_, err = that.games.JumpTo(r.Context(), sessionFrom(r.Context()), move)
	that.redirect(w, r, err)
}

func (that *Handler) ToggleOrder(w http.ResponseWriter, r *http.Request) {
	_, err := that.games.ToggleOrder(r.Context(), sessionFrom(r.Context()))
	that.redirect(w, r, err)
}

func (that *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	_, err := that.games.Restart(r.Context(), sessionFrom(r.Context()))
	that.redirect(w, r, err)
}

func (that *Handler) redirect(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		that.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrMoveOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
