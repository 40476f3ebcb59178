package handler

import (
	"net/http"

	"polka/core"
	"polka/handler/auth"
	"polka/handler/hc"
	"polka/handler/render"
	"polka/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/twitchtv/twirp"
)

// Server api server
type Server struct {
	version    string
	currencies core.CurrencyService
	pools      core.PoolStore
	oracle     core.PriceOracle
	multisig   core.MultiSigService
	bank       core.Bank
	ledgers    rest.Ledgers
}

// New new server function
func New(
	version string,
	currencies core.CurrencyService,
	pools core.PoolStore,
	oracle core.PriceOracle,
	multisig core.MultiSigService,
	bank core.Bank,
	ledgers rest.Ledgers,
) Server {
	return Server{
		version:    version,
		currencies: currencies,
		pools:      pools,
		oracle:     oracle,
		multisig:   multisig,
		bank:       bank,
		ledgers:    ledgers,
	}
}

// Handler root handler with hc, metrics and the restful apis mounted
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(middleware.RequestID)
	mux.Use(withRequestLogger)
	mux.Use(middleware.Logger)
	mux.Use(auth.HandleAuthentication())

	mux.Mount("/hc", hc.Handle(s.version))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Mount("/api", s.HandleRestAPI())

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.currencies, s.pools, s.oracle, s.multisig, s.bank, s.ledgers))
	return r
}

func withRequestLogger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx).WithField("request_id", middleware.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx, log)))
	}

	return http.HandlerFunc(fn)
}
