package controller

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"crmdesk/models"
)

// LinkclickFeed pushes newly recorded link clicks to connected admin
// dashboards over websocket.
type LinkclickFeed struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	logger *logrus.Logger
}

func NewLinkclickFeed(logger *logrus.Logger) *LinkclickFeed {
	return &LinkclickFeed{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

// Handle keeps a dashboard connection registered until it closes.
func (f *LinkclickFeed) Handle(c *websocket.Conn) {
	f.mu.Lock()
	f.conns[c] = struct{}{}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.conns, c)
		f.mu.Unlock()
		c.Close()
	}()

	// Drain until the peer goes away; the feed is one-directional.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a click to every connected dashboard. Dead connections are
// dropped on write failure.
func (f *LinkclickFeed) Broadcast(click *models.Linkclick) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for conn := range f.conns {
		if err := conn.WriteJSON(click); err != nil {
			f.logger.WithError(err).Debug("dropping dead linkclick feed connection")
			conn.Close()
			delete(f.conns, conn)
		}
	}
}
