package catalog

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/quickbite/storefront/lib/mycontext"
	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myhttp"
	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mynotify"
	"github.com/quickbite/storefront/services/cart"
	"github.com/quickbite/storefront/services/cartapi"
)

// CartViewer provides the cart summary shown in the menu header.
type CartViewer interface {
	CurrentState(c context.Context) cart.CartState
}

type WebService struct {
	caller   CatalogCaller
	carts    CartViewer
	notifier mynotify.Notifier
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(caller CatalogCaller, carts CartViewer, notifier mynotify.Notifier) *WebService {
	return &WebService{
		caller:   caller,
		carts:    carts,
		notifier: notifier,
		logger:   mylog.New("catalog"),
	}
}

//go:embed templates
var templateFolder embed.FS

var menuPageTemplate *template.Template

func init() {
	menuPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/menu.html"))
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/", s.menuPage()).Methods("GET")
	router.HandleFunc("/menu", s.menuPage()).Methods("GET")
}

type menuGroup struct {
	Category string
	Items    []cartapi.Product
}

type menuPageData struct {
	Groups        []menuGroup
	Cart          cart.CartState
	Notifications []mynotify.Notification
}

func (s *WebService) menuPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		// a broken feed degrades to an empty menu, the storefront stays up
		items, err := s.caller.FetchMenu(c)
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityWarn, "Error fetching menu: %s", err)
			s.notifier.Notify(c, mynotify.LevelError, "Failed to load menu")
			items = nil
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = menuPageTemplate.Execute(w, menuPageData{
			Groups:        groupByCategory(items),
			Cart:          s.carts.CurrentState(c),
			Notifications: s.notifier.List(c),
		})
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

func groupByCategory(items []cartapi.Product) []menuGroup {
	grouped := map[string][]cartapi.Product{}
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Other"
		}
		grouped[category] = append(grouped[category], item)
	}

	groups := make([]menuGroup, 0, len(grouped))
	for category, products := range grouped {
		groups = append(groups, menuGroup{Category: category, Items: products})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})

	return groups
}
