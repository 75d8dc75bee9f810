package cart

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/quickbite/storefront/lib/mycontext"
	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myhttp"
	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mynotify"
	"github.com/quickbite/storefront/lib/mypubsub"
	"github.com/quickbite/storefront/lib/mystore"
	"github.com/quickbite/storefront/services/cartapi"
	"github.com/quickbite/storefront/services/session"
	"github.com/quickbite/storefront/services/session/sessionevents"
)

const identityPollInterval = 5 * time.Second

type WebService struct {
	service  *service
	notifier mynotify.Notifier
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(caller cartapi.CartCaller, sessions session.Reader, cache mystore.Store[CachedCart], notifier mynotify.Notifier, subscriber mypubsub.PubSub) *WebService {
	return &WebService{
		service:  newService(caller, sessions, cache, notifier, subscriber),
		notifier: notifier,
		logger:   mylog.New("cartweb"),
	}
}

//go:embed templates
var templateFolder embed.FS

var cartPageTemplate *template.Template

func init() {
	cartPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart.html"))
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.Subscribe(c)
	if err != nil {
		return err
	}

	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{lineUID}", s.updateItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{lineUID}/remove", s.removeItemPage()).Methods("POST")
	router.HandleFunc("/cart/clear", s.clearPage()).Methods("POST")
	router.HandleFunc("/cart/notifications/{uid}/dismiss", s.dismissNotificationPage()).Methods("POST")

	// endpoint that receives pushed session events
	router.HandleFunc("/api/cart/event", s.sessionEventPage()).Methods("POST")

	// adopt the persisted mirror, then hydrate for real
	s.service.warmStart(c)
	if err := s.service.FetchCart(c); err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error hydrating cart at startup: %s", err)
	}
	s.service.RunIdentityWatcher(c, identityPollInterval)

	return nil
}

// CurrentState lets co-hosted pages render cart totals.
func (s *WebService) CurrentState(c context.Context) CartState {
	return s.service.CurrentState(c)
}

type cartPageData struct {
	State         CartState
	Entries       []cartapi.CartLine
	Notifications []mynotify.Notification
}

func (s *WebService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		state := s.service.CurrentState(c)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := cartPageTemplate.Execute(w, cartPageData{
			State:         state,
			Entries:       state.VisibleEntries(),
			Notifications: s.notifier.List(c),
		})
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

type addItemForm struct {
	ProductUID string `form:"productUid"`
	Quantity   int    `form:"quantity"`
}

func (s *WebService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		form := addItemForm{Quantity: 1}
		err = formcodec.NewDecoder().Decode(&form, r.Form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}
		if form.ProductUID == "" {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputErrorf("missing productUid"))
			return
		}

		// outcome lands in the notification list either way
		_ = s.service.AddToCart(c, form.ProductUID, form.Quantity)

		redirectBack(w, r)
	}
}

type updateItemForm struct {
	Quantity int `form:"quantity"`
}

// updateItemPage sets the exact quantity of a line. A decrement below one
// means the visitor wants the line gone, which is a removal.
func (s *WebService) updateItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		lineUID := mux.Vars(r)["lineUID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		form := updateItemForm{}
		err = formcodec.NewDecoder().Decode(&form, r.Form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		if form.Quantity < 1 {
			_ = s.service.RemoveFromCart(c, lineUID)
		} else {
			_ = s.service.UpdateQuantity(c, lineUID, form.Quantity)
		}

		redirectBack(w, r)
	}
}

func (s *WebService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		lineUID := mux.Vars(r)["lineUID"]

		_ = s.service.RemoveFromCart(c, lineUID)

		redirectBack(w, r)
	}
}

func (s *WebService) clearPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		_ = s.service.ClearCart(c)

		redirectBack(w, r)
	}
}

func (s *WebService) dismissNotificationPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		uid := mux.Vars(r)["uid"]

		s.notifier.Dismiss(c, uid)

		redirectBack(w, r)
	}
}

func (s *WebService) sessionEventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := sessionevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Header.Get("Referer")
	if target == "" {
		target = "/cart"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
