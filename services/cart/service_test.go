package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/mynotify"
	"github.com/quickbite/storefront/lib/mystore"
	"github.com/quickbite/storefront/lib/mytime"
	"github.com/quickbite/storefront/lib/myuuid"
	"github.com/quickbite/storefront/services/cartapi"
	"github.com/quickbite/storefront/services/session"
)

var (
	signedInAsA = session.Session{Token: "token-a", User: session.User{UID: "a"}}
	signedInAsB = session.Session{Token: "token-b", User: session.User{UID: "b"}}

	paneerTikka = cartapi.Product{UID: "p1", Name: "Paneer Tikka", Price: 10}
	butterNaan  = cartapi.Product{UID: "p2", Name: "Butter Naan", Price: 4}
)

func line(uid string, product cartapi.Product, quantity int) cartapi.CartLine {
	return cartapi.CartLine{UID: uid, Product: &product, Quantity: quantity}
}

func TestAnonymousVisitor(t *testing.T) {

	t.Run("Add without login makes no remote call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, sessions, notifier, _ := setup(t, ctrl)

		// given
		sessions.current = session.Session{}

		// when
		err := sut.AddToCart(ctx, "p1", 1)

		// then
		assert.Error(t, err)
		assert.True(t, myerrors.IsNotAuthenticatedError(err))
		assert.Empty(t, sut.CurrentState(ctx).Entries)
		assert.Equal(t, "Login to add items", lastNotification(t, ctx, notifier))
	})

	t.Run("Fetch without login leaves the cart empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, sessions, _, _ := setup(t, ctrl)

		// given
		sessions.current = session.Session{}

		// when
		err := sut.FetchCart(ctx)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Empty(t, state.Entries)
		assert.Equal(t, 0, state.TotalItems())
		assert.Equal(t, 0, state.TotalAmount())
		assert.Equal(t, PhaseEmpty, state.Phase)
	})

	t.Run("Clear without login is rejected locally", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, sessions, _, _ := setup(t, ctrl)

		// given
		sessions.current = session.Session{}

		// when
		err := sut.ClearCart(ctx)

		// then
		assert.True(t, myerrors.IsNotAuthenticatedError(err))
	})
}

func TestFetchCart(t *testing.T) {

	t.Run("Fetch adopts server cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, _, cache := setup(t, ctrl)

		// given
		caller.EXPECT().Fetch(gomock.Any(), "token-a").Return([]cartapi.CartLine{
			line("c1", paneerTikka, 2),
		}, nil)

		// when
		err := sut.FetchCart(ctx)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Len(t, state.Entries, 1)
		assert.Equal(t, 2, state.TotalItems())
		assert.Equal(t, 20, state.TotalAmount())
		assert.Equal(t, PhaseReady, state.Phase)
		assert.Equal(t, "a", state.OwnerUID)

		// and the mirror follows
		cached, found, err := cache.Get(ctx, currentCartKey)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a", cached.OwnerUID)
		assert.Len(t, cached.Entries, 1)
	})

	t.Run("Totals skip lines whose product disappeared", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, _, _ := setup(t, ctrl)

		// given
		caller.EXPECT().Fetch(gomock.Any(), "token-a").Return([]cartapi.CartLine{
			line("c1", paneerTikka, 2),
			{UID: "c2", Product: nil, Quantity: 3},
		}, nil)

		// when
		err := sut.FetchCart(ctx)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Len(t, state.Entries, 2)
		assert.Len(t, state.VisibleEntries(), 1)
		assert.Equal(t, 2, state.TotalItems())
		assert.Equal(t, 20, state.TotalAmount())
	})

	t.Run("Fetch failure keeps state and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		caller.EXPECT().Fetch(gomock.Any(), "token-a").Return(nil, myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		err := sut.FetchCart(ctx)

		// then
		assert.Error(t, err)
		state := sut.CurrentState(ctx)
		assert.Len(t, state.Entries, 1)
		assert.Equal(t, "Failed to load cart", lastNotification(t, ctx, notifier))
	})
}

func TestAddToCart(t *testing.T) {

	t.Run("Server decides the merged quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, _, _ := setup(t, ctrl)

		// given a server that merges repeated adds its own way
		gomock.InOrder(
			caller.EXPECT().Add(gomock.Any(), "token-a", "p1", 2).Return(line("c1", paneerTikka, 2), nil),
			caller.EXPECT().Add(gomock.Any(), "token-a", "p1", 3).Return(line("c1", paneerTikka, 5), nil),
		)

		// when
		err := sut.AddToCart(ctx, "p1", 2)
		assert.NoError(t, err)
		err = sut.AddToCart(ctx, "p1", 3)
		assert.NoError(t, err)

		// then the server's answer is adopted as-is
		state := sut.CurrentState(ctx)
		assert.Len(t, state.Entries, 1)
		assert.Equal(t, 5, state.Entries[0].Quantity)
		assert.Equal(t, 5, state.TotalItems())
	})

	t.Run("New product is appended", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		caller.EXPECT().Add(gomock.Any(), "token-a", "p2", 1).Return(line("c2", butterNaan, 1), nil)

		// when
		err := sut.AddToCart(ctx, "p2", 1)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Len(t, state.Entries, 2)
		assert.Equal(t, 3, state.TotalItems())
		assert.Equal(t, 24, state.TotalAmount())
		assert.Equal(t, "Added to cart", lastNotification(t, ctx, notifier))
	})

	t.Run("Backend message is shown on rejection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)

		// given
		caller.EXPECT().Add(gomock.Any(), "token-a", "p1", 1).
			Return(cartapi.CartLine{}, cartapi.RemoteError{StatusCode: 409, Message: "Item out of stock"})

		// when
		err := sut.AddToCart(ctx, "p1", 1)

		// then
		assert.Error(t, err)
		assert.Empty(t, sut.CurrentState(ctx).Entries)
		assert.Equal(t, "Item out of stock", lastNotification(t, ctx, notifier))
	})

	t.Run("Transport failure falls back to generic message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)

		// given
		caller.EXPECT().Add(gomock.Any(), "token-a", "p1", 1).
			Return(cartapi.CartLine{}, myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		err := sut.AddToCart(ctx, "p1", 1)

		// then
		assert.Error(t, err)
		assert.Equal(t, "Failed to add item", lastNotification(t, ctx, notifier))
	})

	t.Run("Quantity below one is invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, _, _, _ := setup(t, ctrl)

		// when
		err := sut.AddToCart(ctx, "p1", 0)

		// then
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}

func TestUpdateQuantity(t *testing.T) {

	t.Run("Update adopts the server's line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, _, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		caller.EXPECT().Update(gomock.Any(), "token-a", "c1", 1).Return(line("c1", paneerTikka, 1), nil)

		// when
		err := sut.UpdateQuantity(ctx, "c1", 1)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Equal(t, 1, state.TotalItems())
		assert.Equal(t, 10, state.TotalAmount())
	})

	t.Run("Update failure keeps state and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		caller.EXPECT().Update(gomock.Any(), "token-a", "c1", 3).
			Return(cartapi.CartLine{}, myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		err := sut.UpdateQuantity(ctx, "c1", 3)

		// then
		assert.Error(t, err)
		assert.Equal(t, 2, sut.CurrentState(ctx).TotalItems())
		assert.Equal(t, "Failed to update cart", lastNotification(t, ctx, notifier))
	})

	t.Run("Quantity zero is not an update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, _, _, _ := setup(t, ctrl)

		// when
		err := sut.UpdateQuantity(ctx, "c1", 0)

		// then
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}

func TestRemoveFromCart(t *testing.T) {

	t.Run("Remove drops the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2), line("c2", butterNaan, 1))

		// given
		caller.EXPECT().Remove(gomock.Any(), "token-a", "c1").Return(nil)

		// when
		err := sut.RemoveFromCart(ctx, "c1")

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Len(t, state.Entries, 1)
		assert.Equal(t, "c2", state.Entries[0].UID)
		assert.Equal(t, "Removed from cart", lastNotification(t, ctx, notifier))
	})

	t.Run("Remove failure keeps the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		caller.EXPECT().Remove(gomock.Any(), "token-a", "c1").
			Return(myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		err := sut.RemoveFromCart(ctx, "c1")

		// then
		assert.Error(t, err)
		assert.Len(t, sut.CurrentState(ctx).Entries, 1)
		assert.Equal(t, "Failed to remove item", lastNotification(t, ctx, notifier))
	})
}

func TestClearCart(t *testing.T) {

	t.Run("Clearing twice hits the backend twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, _, cache := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given the second call must go out even though the cart already looks empty
		caller.EXPECT().Clear(gomock.Any(), "token-a").Return(nil).Times(2)

		// when
		err := sut.ClearCart(ctx)
		assert.NoError(t, err)
		assert.Empty(t, sut.CurrentState(ctx).Entries)

		err = sut.ClearCart(ctx)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Empty(t, state.Entries)
		assert.Equal(t, PhaseEmpty, state.Phase)

		// and the mirror followed
		cached, found, err := cache.Get(ctx, currentCartKey)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, cached.Entries)
	})

	t.Run("Clear failure keeps state and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, notifier, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		caller.EXPECT().Clear(gomock.Any(), "token-a").
			Return(myerrors.NewUnavailableError(errors.New("connection refused")))

		// when
		err := sut.ClearCart(ctx)

		// then
		assert.Error(t, err)
		assert.Len(t, sut.CurrentState(ctx).Entries, 1)
		assert.Equal(t, "Failed to clear cart", lastNotification(t, ctx, notifier))
	})
}

func TestCartMirror(t *testing.T) {

	t.Run("Mirrored entries are isolated from later changes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx := context.TODO()
		caller := cartapi.NewMockCartCaller(ctrl)
		cache := mystore.NewMockStore[CachedCart](ctrl)
		sut := newService(caller, &sessionStub{current: signedInAsA}, cache, newTestNotifier(ctrl), nil)

		// given a cache backend that holds on to what it was handed
		mirrored := []CachedCart{}
		cache.EXPECT().Put(gomock.Any(), currentCartKey, gomock.Any()).
			DoAndReturn(func(c context.Context, uid string, value CachedCart) error {
				mirrored = append(mirrored, value)
				return nil
			}).Times(2)
		caller.EXPECT().Add(gomock.Any(), "token-a", "p1", 1).Return(line("c1", paneerTikka, 1), nil)
		caller.EXPECT().Update(gomock.Any(), "token-a", "c1", 9).Return(line("c1", paneerTikka, 9), nil)

		// when a later change rewrites the same line
		assert.NoError(t, sut.AddToCart(ctx, "p1", 1))
		assert.NoError(t, sut.UpdateQuantity(ctx, "c1", 9))

		// then each mirror still holds the entries it was written with
		assert.Equal(t, 1, mirrored[0].Entries[0].Quantity)
		assert.Equal(t, 9, mirrored[1].Entries[0].Quantity)
	})
}

func TestReconcileIdentity(t *testing.T) {

	t.Run("Tick without change does nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, _, _, _ := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// when repeated reconciliations see the same identity
		assert.NoError(t, sut.ReconcileIdentity(ctx))
		assert.NoError(t, sut.ReconcileIdentity(ctx))

		// then no fetch happened and the cart is untouched
		assert.Len(t, sut.CurrentState(ctx).Entries, 1)
	})

	t.Run("Login in another tab rescopes the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, sessions, _, cache := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given another tab signed in as someone else
		sessions.current = signedInAsB
		caller.EXPECT().Fetch(gomock.Any(), "token-b").Return([]cartapi.CartLine{
			line("c9", butterNaan, 1),
		}, nil)

		// when
		err := sut.ReconcileIdentity(ctx)

		// then the previous cart is gone, only the new identity's lines remain
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Equal(t, "b", state.OwnerUID)
		assert.Len(t, state.Entries, 1)
		assert.Equal(t, "c9", state.Entries[0].UID)
		for _, entry := range state.Entries {
			assert.NotEqual(t, "c1", entry.UID)
		}

		cached, found, err := cache.Get(ctx, currentCartKey)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "b", cached.OwnerUID)
	})

	t.Run("Logout after opaque-token login discards the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, sessions, _, cache := setup(t, ctrl)

		// given a session whose token yields no user id at all
		sessions.current = session.Session{Token: "opaque-token"}
		caller.EXPECT().Fetch(gomock.Any(), "opaque-token").Return([]cartapi.CartLine{
			line("c1", paneerTikka, 2),
		}, nil)
		assert.NoError(t, sut.FetchCart(ctx))
		assert.Len(t, sut.CurrentState(ctx).Entries, 1)

		// when that session is signed out
		sessions.current = session.Session{}
		err := sut.ReconcileIdentity(ctx)

		// then nothing of it survives
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Empty(t, state.Entries)
		assert.Equal(t, PhaseEmpty, state.Phase)

		_, found, err := cache.Get(ctx, currentCartKey)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Logout discards cart and mirror", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, caller, sessions, _, cache := setup(t, ctrl)
		givenCartWith(t, ctx, sut, caller, line("c1", paneerTikka, 2))

		// given
		sessions.current = session.Session{}

		// when
		err := sut.ReconcileIdentity(ctx)

		// then
		assert.NoError(t, err)
		state := sut.CurrentState(ctx)
		assert.Empty(t, state.Entries)
		assert.Equal(t, PhaseEmpty, state.Phase)

		_, found, err := cache.Get(ctx, currentCartKey)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestWarmStart(t *testing.T) {

	t.Run("Mirror of the current identity is adopted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, _, _, cache := setup(t, ctrl)

		// given
		err := cache.Put(ctx, currentCartKey, CachedCart{
			OwnerUID: "a",
			Entries:  []cartapi.CartLine{line("c1", paneerTikka, 2)},
		})
		assert.NoError(t, err)

		// when
		sut.warmStart(ctx)

		// then
		state := sut.CurrentState(ctx)
		assert.Equal(t, "a", state.OwnerUID)
		assert.Equal(t, 2, state.TotalItems())
		assert.Equal(t, PhaseReady, state.Phase)
	})

	t.Run("Mirror of another identity is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, _, _, cache := setup(t, ctrl)

		// given
		err := cache.Put(ctx, currentCartKey, CachedCart{
			OwnerUID: "someone-else",
			Entries:  []cartapi.CartLine{line("c1", paneerTikka, 2)},
		})
		assert.NoError(t, err)

		// when
		sut.warmStart(ctx)

		// then
		assert.Empty(t, sut.CurrentState(ctx).Entries)
	})

	t.Run("Mirror is ignored for anonymous visitors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, _, sessions, _, cache := setup(t, ctrl)

		// given
		sessions.current = session.Session{}
		err := cache.Put(ctx, currentCartKey, CachedCart{
			OwnerUID: "a",
			Entries:  []cartapi.CartLine{line("c1", paneerTikka, 2)},
		})
		assert.NoError(t, err)

		// when
		sut.warmStart(ctx)

		// then
		assert.Empty(t, sut.CurrentState(ctx).Entries)
	})

	t.Run("Unreadable mirror is discarded silently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx := context.TODO()
		caller := cartapi.NewMockCartCaller(ctrl)
		brokenCache := mystore.NewMockStore[CachedCart](ctrl)
		notifier := newTestNotifier(ctrl)
		sut := newService(caller, &sessionStub{current: signedInAsA}, brokenCache, notifier, nil)

		// given
		brokenCache.EXPECT().Get(gomock.Any(), currentCartKey).
			Return(CachedCart{}, false, errors.New("unexpected end of JSON input"))
		brokenCache.EXPECT().Delete(gomock.Any(), currentCartKey).Return(nil)

		// when
		sut.warmStart(ctx)

		// then the cart starts empty as if no mirror existed
		assert.Empty(t, sut.CurrentState(ctx).Entries)
		assert.Equal(t, PhaseEmpty, sut.CurrentState(ctx).Phase)
	})
}

type sessionStub struct {
	current session.Session
}

func (s *sessionStub) Current(c context.Context) (session.Session, error) {
	return s.current, nil
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *service, *cartapi.MockCartCaller, *sessionStub, mynotify.Notifier, mystore.Store[CachedCart]) {
	ctx := context.TODO()

	caller := cartapi.NewMockCartCaller(ctrl)
	sessions := &sessionStub{current: signedInAsA}
	cache, _, err := mystore.New[CachedCart](ctx)
	assert.NoError(t, err)
	notifier := newTestNotifier(ctrl)

	sut := newService(caller, sessions, cache, notifier, nil)

	return ctx, sut, caller, sessions, notifier, cache
}

func newTestNotifier(ctrl *gomock.Controller) mynotify.Notifier {
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("uid-123").AnyTimes()

	return mynotify.New(nower, uuider)
}

func lastNotification(t *testing.T, ctx context.Context, notifier mynotify.Notifier) string {
	pending := notifier.List(ctx)
	if !assert.NotEmpty(t, pending) {
		return ""
	}
	return pending[len(pending)-1].Message
}

func givenCartWith(t *testing.T, ctx context.Context, sut *service, caller *cartapi.MockCartCaller, lines ...cartapi.CartLine) {
	caller.EXPECT().Fetch(gomock.Any(), "token-a").Return(lines, nil)
	err := sut.FetchCart(ctx)
	assert.NoError(t, err)
}
