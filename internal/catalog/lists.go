package catalog

import "context"

// ListState is the list controller's position in its Idle → Loading →
// {Loaded, Error} machine.
type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListLoaded
	ListError
)

func (s ListState) String() string {
	switch s {
	case ListIdle:
		return "idle"
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListError:
		return "error"
	default:
		return "unknown"
	}
}

// ListController owns one entity list: it fetches, filters by category,
// and refetches after every successful mutation. The refetch-after-mutate
// policy is deliberate: re-deriving the list from the server is simpler to
// reason about than optimistic local patches, at the cost of one extra
// round trip.
type ListController struct {
	client *Client
	schema Schema

	state    ListState
	entities []Entity
	errMsg   string
	category string
}

func NewListController(client *Client, schema Schema) *ListController {
	return &ListController{client: client, schema: schema}
}

func (l *ListController) State() ListState { return l.state }
func (l *ListController) Err() string      { return l.errMsg }
func (l *ListController) Schema() Schema   { return l.schema }

// Begin moves the controller to Loading. Callers that fetch on a separate
// turn (the TUI) call Begin first and Resolve when the fetch lands.
func (l *ListController) Begin() {
	l.state = ListLoading
	l.errMsg = ""
}

// Resolve applies a fetch result. A failed fetch keeps the previous
// snapshot but surfaces the error until the next refetch.
func (l *ListController) Resolve(entities []Entity, out Outcome) {
	if out.Kind.Failed() {
		l.state = ListError
		l.errMsg = out.Message
		return
	}
	l.state = ListLoaded
	l.entities = entities
	l.errMsg = ""
}

// Fetch runs Begin + the network call + Resolve synchronously. CLI
// consumers use this; the TUI drives the two halves itself.
func (l *ListController) Fetch(ctx context.Context) Outcome {
	l.Begin()
	entities, out := l.client.List(ctx, l.schema)
	l.Resolve(entities, out)
	return out
}

// SetCategory sets the category filter; "" shows everything.
func (l *ListController) SetCategory(category string) {
	l.category = category
}

// Entities returns the unfiltered snapshot.
func (l *ListController) Entities() []Entity { return l.entities }

// Filtered projects the snapshot through the category filter. Pure
// projection: no fetch, no mutation.
func (l *ListController) Filtered() []Entity {
	if l.category == "" {
		return l.entities
	}
	var out []Entity
	for _, e := range l.entities {
		if e.Category == l.category {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entity with the given id from the current snapshot.
func (l *ListController) Find(id string) (Entity, bool) {
	for _, e := range l.entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
