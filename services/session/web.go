package session

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/quickbite/storefront/lib/mycontext"
	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myhttp"
	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mypublisher"
	"github.com/quickbite/storefront/lib/mystore"
	"github.com/quickbite/storefront/services/session/sessionevents"
)

// Reader gives other components read access to the persisted identity.
type Reader interface {
	Current(c context.Context) (Session, error)
}

type WebService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Session], publisher mypublisher.Publisher) *WebService {
	logger := mylog.New("session")

	return &WebService{
		service: newService(store, publisher, logger),
		logger:  logger,
	}
}

//go:embed templates
var templateFolder embed.FS

var loginPageTemplate *template.Template

func init() {
	loginPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/login.html"))
}

func (s *WebService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, sessionevents.TopicName)
	if err != nil {
		return err
	}

	router.HandleFunc("/login", s.loginPage()).Methods("GET")
	router.HandleFunc("/session", s.signInPage()).Methods("POST")
	router.HandleFunc("/session/logout", s.signOutPage()).Methods("POST")

	return nil
}

// Current exposes the persisted session to co-hosted components.
func (s *WebService) Current(c context.Context) (Session, error) {
	return s.service.Current(c)
}

func (s *WebService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := loginPageTemplate.Execute(w, nil)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

type signInForm struct {
	Token    string `form:"token"`
	UserUID  string `form:"userUid"`
	Username string `form:"username"`
	Email    string `form:"email"`
}

// signInPage installs a token and profile issued by the external auth service.
// Token issuance itself happens elsewhere: this is only persistence.
func (s *WebService) signInPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		form := signInForm{}
		err = formcodec.NewDecoder().Decode(&form, r.Form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		err = s.service.signIn(c, Session{
			Token: form.Token,
			User: User{
				UID:   form.UserUID,
				Name:  form.Username,
				Email: form.Email,
			},
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *WebService) signOutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.signOut(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
