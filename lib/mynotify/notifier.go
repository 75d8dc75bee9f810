package mynotify

import (
	"context"
	"sync"

	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mytime"
	"github.com/quickbite/storefront/lib/myuuid"
)

const maxPending = 10

type inMemoryNotifier struct {
	sync.Mutex
	pending []Notification
	nower   mytime.Nower
	uuider  myuuid.UUIDer
	logger  mylog.Logger
}

func New(nower mytime.Nower, uuider myuuid.UUIDer) Notifier {
	return &inMemoryNotifier{
		pending: []Notification{},
		nower:   nower,
		uuider:  uuider,
		logger:  mylog.New("notifier"),
	}
}

func (n *inMemoryNotifier) Notify(c context.Context, level Level, message string) {
	n.Lock()
	defer n.Unlock()

	n.logger.Log(c, "", mylog.SeverityInfo, "Notify user (%s): %s", level, message)

	n.pending = append(n.pending, Notification{
		UID:       n.uuider.Create(),
		CreatedAt: n.nower.Now(),
		Level:     level,
		Message:   message,
	})
	if len(n.pending) > maxPending {
		n.pending = n.pending[len(n.pending)-maxPending:]
	}
}

func (n *inMemoryNotifier) List(c context.Context) []Notification {
	n.Lock()
	defer n.Unlock()

	result := make([]Notification, len(n.pending))
	copy(result, n.pending)

	return result
}

func (n *inMemoryNotifier) Dismiss(c context.Context, uid string) {
	n.Lock()
	defer n.Unlock()

	kept := make([]Notification, 0, len(n.pending))
	for _, notification := range n.pending {
		if notification.UID != uid {
			kept = append(kept, notification)
		}
	}
	n.pending = kept
}
