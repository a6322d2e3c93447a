package client

import (
	"context"
	"time"
)

// DefaultPageSize is how many listings a refetch asks for.
const DefaultPageSize = 20

// SwipeAPI is the slice of APIClient the controller uses.
type SwipeAPI interface {
	Houses(ctx context.Context, p ListParams) ([]House, error)
	RecordSwipe(ctx context.Context, houseID string, dir Direction, dwell time.Duration) (*Swipe, error)
}

// Controller walks a locally held feed. It is not safe for concurrent use;
// the UI goroutine owns it and only the network calls run elsewhere.
type Controller struct {
	api        SwipeAPI
	dispatcher *Dispatcher
	pageSize   int
	now        func() time.Time

	feed    []House
	cursor  int
	shownAt time.Time
}

func NewController(api SwipeAPI, d *Dispatcher, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	c := &Controller{api: api, dispatcher: d, pageSize: pageSize, now: time.Now}
	c.shownAt = c.now()
	return c
}

// SetClock replaces time.Now; tests use it to control dwell.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
	c.shownAt = now()
}

func (c *Controller) Current() (House, bool) {
	if c.Exhausted() {
		return House{}, false
	}
	return c.feed[c.cursor], true
}

func (c *Controller) Exhausted() bool { return c.cursor >= len(c.feed) }

// Position returns the cursor and the feed length.
func (c *Controller) Position() (int, int) { return c.cursor, len(c.feed) }

// Swipe records a decision on the current listing in the background and
// moves on immediately. It returns false when the feed is exhausted.
func (c *Controller) Swipe(dir Direction) bool {
	h, ok := c.Current()
	if !ok {
		return false
	}
	dwell := c.now().Sub(c.shownAt)
	api := c.api
	c.dispatcher.Submit(Task{
		Name: "swipe " + h.ID,
		Run: func(ctx context.Context) error {
			_, err := api.RecordSwipe(ctx, h.ID, dir, dwell)
			return err
		},
	})
	c.cursor++
	c.shownAt = c.now()
	return true
}

// FirstPage is the request a refetch makes. There is no "already seen"
// exclusion, so listings already swiped can come back.
func (c *Controller) FirstPage() ListParams {
	return ListParams{Take: c.pageSize, Skip: 0}
}

// Refetch replaces the feed with the first page and restarts at its top.
func (c *Controller) Refetch(ctx context.Context) error {
	houses, err := c.api.Houses(ctx, c.FirstPage())
	if err != nil {
		return err
	}
	c.Load(houses)
	return nil
}

// Load installs a fetched feed and resets the cursor and dwell timer.
func (c *Controller) Load(feed []House) {
	c.feed = feed
	c.cursor = 0
	c.shownAt = c.now()
}
