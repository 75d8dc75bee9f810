package cart

import (
	"context"
	"sync"

	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mynotify"
	"github.com/quickbite/storefront/lib/mypubsub"
	"github.com/quickbite/storefront/lib/mystore"
	"github.com/quickbite/storefront/services/cartapi"
	"github.com/quickbite/storefront/services/session"
)

// service holds the client-side cart state and keeps it in sync with the
// remote cart api and the current session. The state mutex is held only while
// reading or applying state, never across a network call, so overlapping
// operations settle in arrival order of their responses.
type service struct {
	mutex      sync.Mutex
	state      CartState
	caller     cartapi.CartCaller
	sessions   session.Reader
	cache      mystore.Store[CachedCart]
	notifier   mynotify.Notifier
	subscriber mypubsub.PubSub
	logger     mylog.Logger
}

func newService(caller cartapi.CartCaller, sessions session.Reader, cache mystore.Store[CachedCart], notifier mynotify.Notifier, subscriber mypubsub.PubSub) *service {
	return &service{
		state:      CartState{Phase: PhaseEmpty},
		caller:     caller,
		sessions:   sessions,
		cache:      cache,
		notifier:   notifier,
		subscriber: subscriber,
		logger:     mylog.New("cart"),
	}
}

// CurrentState returns a copy of the cart to render.
func (s *service) CurrentState(c context.Context) CartState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	state := s.state
	state.Entries = append([]cartapi.CartLine{}, s.state.Entries...)
	return state
}

// warmStart pre-populates the cart from the persisted mirror so the first
// page render is not empty while the initial fetch is still out. The mirror is
// only adopted when it belongs to the current identity; a mirror that cannot
// be read is discarded as if it never existed.
func (s *service) warmStart(c context.Context) {
	currentSession, err := s.sessions.Current(c)
	if err != nil || currentSession.IsAnonymous() {
		return
	}

	cached, found, err := s.cache.Get(c, currentCartKey)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityInfo, "Discarding unreadable cart mirror: %s", err)
		if err := s.cache.Delete(c, currentCartKey); err != nil {
			s.logger.Log(c, "", mylog.SeverityWarn, "Error removing cart mirror: %s", err)
		}
		return
	}
	if !found || cached.OwnerUID != ownerKeyFor(currentSession) {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = CartState{
		OwnerUID: cached.OwnerUID,
		Phase:    phaseFor(cached.Entries),
		Entries:  append([]cartapi.CartLine{}, cached.Entries...),
	}
}

// apply records a confirmed transition and refreshes the persisted
// mirror. Mirror write errors are logged, never surfaced: the mirror is a
// convenience, the in-memory state is what counts.
func (s *service) apply(c context.Context, ownerUID string, t transition) CartState {
	s.mutex.Lock()
	s.state.Entries = t.apply(s.state.Entries)
	s.state.OwnerUID = ownerUID
	s.state.Phase = phaseFor(s.state.Entries)
	state := s.state
	// snapshot: later transitions rewrite the backing array in place
	state.Entries = append([]cartapi.CartLine{}, s.state.Entries...)
	s.mutex.Unlock()

	if err := s.cache.Put(c, currentCartKey, CachedCart{OwnerUID: state.OwnerUID, Entries: state.Entries}); err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error mirroring cart: %s", err)
	}
	return state
}

// discard forgets all cart state including the persisted mirror. Used when
// the owning identity goes away or changes.
func (s *service) discard(c context.Context) {
	s.mutex.Lock()
	s.state = CartState{Phase: PhaseEmpty}
	s.mutex.Unlock()

	if err := s.cache.Delete(c, currentCartKey); err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error removing cart mirror: %s", err)
	}
}

func (s *service) setPhase(phase Phase) {
	s.mutex.Lock()
	s.state.Phase = phase
	s.mutex.Unlock()
}

// ownerKeyFor scopes cart state to an identity. A signed-in session whose
// token yields no resolvable user id is scoped by the token itself, so it can
// never be mistaken for the anonymous (empty) owner.
func ownerKeyFor(s session.Session) string {
	if s.IsAnonymous() {
		return ""
	}
	if uid := s.UserUID(); uid != "" {
		return uid
	}
	return s.Token
}

func phaseFor(entries []cartapi.CartLine) Phase {
	if len(entries) == 0 {
		return PhaseEmpty
	}
	return PhaseReady
}
