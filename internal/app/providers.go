package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	orderhttp "github.com/tair/retail-dashboard/internal/order/delivery/http"
	orderdomain "github.com/tair/retail-dashboard/internal/order/domain"
	ordercmd "github.com/tair/retail-dashboard/internal/order/usecase/command"
	orderquery "github.com/tair/retail-dashboard/internal/order/usecase/query"
	producthttp "github.com/tair/retail-dashboard/internal/product/delivery/http"
	productdomain "github.com/tair/retail-dashboard/internal/product/domain"
	productcmd "github.com/tair/retail-dashboard/internal/product/usecase/command"
	productquery "github.com/tair/retail-dashboard/internal/product/usecase/query"
	sessionhttp "github.com/tair/retail-dashboard/internal/session/delivery/http"
	sessiondomain "github.com/tair/retail-dashboard/internal/session/domain"
	sessionusecase "github.com/tair/retail-dashboard/internal/session/usecase"
	userhttp "github.com/tair/retail-dashboard/internal/user/delivery/http"
	userdomain "github.com/tair/retail-dashboard/internal/user/domain"
	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/config"
	"github.com/tair/retail-dashboard/pkg/httpapi"
	"github.com/tair/retail-dashboard/pkg/ratelimit"
)

// Events is the outbound event stream shared by the catalog and checkout
type Events interface {
	productdomain.ChangeNotifier
	orderdomain.EventPublisher
	Close() error
}

// ProvideProductRepository provides the mirrored catalog repository
func ProvideProductRepository(s *Stores) productdomain.Repository {
	return s.Products
}

// ProvideRefresher provides the catalog mirror for pulls
func ProvideRefresher(s *Stores) productquery.Refresher {
	return s.Mirror
}

// ProvideUserRepository provides the user repository
func ProvideUserRepository(s *Stores) userdomain.UserRepository {
	return s.Users
}

// ProvideOrderRepository provides the order ledger
func ProvideOrderRepository(s *Stores) orderdomain.Repository {
	return s.Orders
}

// ProvideSessionStore provides the session store
func ProvideSessionStore(s *Stores) sessiondomain.Store {
	return s.Sessions
}

// ProvideChangeNotifier provides the catalog change publisher
func ProvideChangeNotifier(e Events) productdomain.ChangeNotifier {
	return e
}

// ProvideOrderPublisher provides the order event publisher
func ProvideOrderPublisher(e Events) orderdomain.EventPublisher {
	return e
}

// ProvideTokenIssuer provides the session token issuer
func ProvideTokenIssuer(cfg *config.Config) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
}

// ProvideLoginLimiter provides the login attempt limiter; without Redis it
// allows everything
func ProvideLoginLimiter(cfg *config.Config, s *Stores) *ratelimit.Limiter {
	return ratelimit.NewLimiter(s.Redis, "login", cfg.LoginLimit.MaxAttempts, cfg.LoginLimit.Window)
}

// ProvideMetrics provides the HTTP request instruments
func ProvideMetrics(reg prometheus.Registerer) *httpapi.Metrics {
	return httpapi.NewMetrics(reg, "catalog")
}

// Handlers holds every HTTP handler of the service
type Handlers struct {
	Product    *producthttp.ProductHandler
	User       *userhttp.UserHandler
	Session    *sessionhttp.SessionHandler
	Order      *orderhttp.OrderHandler
	Controller *sessionusecase.Controller
}

// ProvideHandlers groups the HTTP handlers
func ProvideHandlers(
	product *producthttp.ProductHandler,
	user *userhttp.UserHandler,
	session *sessionhttp.SessionHandler,
	order *orderhttp.OrderHandler,
	controller *sessionusecase.Controller,
) *Handlers {
	return &Handlers{
		Product:    product,
		User:       user,
		Session:    session,
		Order:      order,
		Controller: controller,
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideRefresher,
	ProvideUserRepository,
	ProvideOrderRepository,
	ProvideSessionStore,
)

var CatalogSet = wire.NewSet(
	ProvideChangeNotifier,
	productcmd.NewCatalogWriter,
	productcmd.NewCreateProductHandler,
	productcmd.NewUpdateProductHandler,
	productcmd.NewDeleteProductHandler,
	productcmd.NewReplaceCatalogHandler,
	productcmd.NewImportCatalogHandler,
	productcmd.NewSeedCatalogHandler,
	productcmd.NewPurchaseProductHandler,
	productquery.NewListProductsHandler,
	productquery.NewGetProductHandler,
	productquery.NewListCategoriesHandler,
	productquery.NewGetDashboardHandler,
	productquery.NewExportCatalogHandler,
	productquery.NewPullCatalogHandler,
	producthttp.NewProductHandler,
)

var AccountSet = wire.NewSet(
	ProvideTokenIssuer,
	ProvideLoginLimiter,
	usercmd.NewRegisterUserHandler,
	usercmd.NewAuthenticateUserHandler,
	userhttp.NewUserHandler,
	sessionusecase.NewController,
	sessionhttp.NewSessionHandler,
)

var OrderSet = wire.NewSet(
	ProvideOrderPublisher,
	ordercmd.NewCheckoutHandler,
	orderquery.NewListMyOrdersHandler,
	orderquery.NewListOrdersHandler,
	orderhttp.NewOrderHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CatalogSet,
	AccountSet,
	OrderSet,
	ProvideMetrics,
	ProvideHandlers,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
)
