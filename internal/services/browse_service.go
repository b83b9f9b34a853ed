package services

import (
	"context"
	"sync"
	"time"

	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/google/uuid"
)

const (
	PublicUpcomingLimit = 50
	PublicPastLimit     = 50
	MineLimit           = 100
	MinePastLimit       = 50
)

// EventLists is the aggregate the home screen consumes: four independently
// ordered, capped lists evaluated against a single instant.
type EventLists struct {
	PublicUpcoming []*models.Event `json:"public_upcoming"`
	PublicPast     []*models.Event `json:"public_past"`
	Mine           []*models.Event `json:"mine"`
	MinePast       []*models.Event `json:"mine_past"`
}

// BrowseService categorizes events into the four display sets using one
// "now" boundary per call.
type BrowseService struct {
	eventsRepo models.EventsRepo
	now        func() time.Time
}

func NewBrowseService(eventsRepo models.EventsRepo) *BrowseService {
	return &BrowseService{
		eventsRepo: eventsRepo,
		now:        time.Now,
	}
}

// LoadLists fans the four queries out concurrently and joins them at a
// barrier. The call is fail-fast: if any query errors, the whole aggregate
// fails rather than returning partial data. An anonymous caller (uid ==
// uuid.Nil) gets empty Mine/MinePast lists, not an error.
//
// Each query runs against the store's own current snapshot; there is no
// cross-list atomicity, so an event whose end_time crosses now between two
// queries may show up in zero or two lists. Accepted.
func (bs *BrowseService) LoadLists(ctx context.Context, uid uuid.UUID) (*EventLists, error) {
	now := bs.now()

	lists := &EventLists{
		Mine:     []*models.Event{},
		MinePast: []*models.Event{},
	}

	type query struct {
		run func() error
	}

	queries := []query{
		{run: func() error {
			events, err := bs.eventsRepo.ListPublicUpcoming(ctx, now, PublicUpcomingLimit)
			lists.PublicUpcoming = events
			return err
		}},
		{run: func() error {
			events, err := bs.eventsRepo.ListPublicPast(ctx, now, PublicPastLimit)
			lists.PublicPast = events
			return err
		}},
	}

	if uid != uuid.Nil {
		queries = append(queries,
			query{run: func() error {
				events, err := bs.eventsRepo.ListByCreator(ctx, uid, MineLimit)
				lists.Mine = events
				return err
			}},
			query{run: func() error {
				events, err := bs.eventsRepo.ListPastByCreator(ctx, uid, now, MinePastLimit)
				lists.MinePast = events
				return err
			}},
		)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(queries))
	for _, q := range queries {
		wg.Add(1)
		go func(q query) {
			defer wg.Done()
			if err := q.run(); err != nil {
				errCh <- err
			}
		}(q)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}
	return lists, nil
}
