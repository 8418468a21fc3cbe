package client

import (
	"errors"
	"fmt"
	"sort"

	"github.com/diewo77/go-artisans/internal/models"
)

// Screen names a view of the client.
type Screen string

const (
	ScreenHome           Screen = "home"
	ScreenSearchCriteria Screen = "search-criteria"
	ScreenResultList     Screen = "result-list"
	ScreenProfileDetail  Screen = "profile-detail"
	ScreenContact        Screen = "contact"
	ScreenLogin          Screen = "login"
	ScreenDashboard      Screen = "dashboard"
	ScreenProfileEdit    Screen = "profile-edit"
	ScreenAvailability   Screen = "availability"
	ScreenRequestsList   Screen = "requests-list"
)

// EventKind names a navigation trigger.
type EventKind string

const (
	EventOpenSearch       EventKind = "open-search"
	EventOpenLogin        EventKind = "open-login"
	EventBack             EventKind = "back"
	EventSearch           EventKind = "search"
	EventUpdateCriteria   EventKind = "update-criteria"
	EventSelectArtisan    EventKind = "select-artisan"
	EventContact          EventKind = "contact"
	EventComplete         EventKind = "complete"
	EventLoggedIn         EventKind = "logged-in"
	EventOpenProfile      EventKind = "open-profile"
	EventOpenAvailability EventKind = "open-availability"
	EventOpenRequests     EventKind = "open-requests"
	EventLogout           EventKind = "logout"
)

// Event is a navigation trigger with its optional payload.
type Event struct {
	Kind EventKind
	// Category preselects a trade on EventOpenSearch; empty keeps the
	// current one.
	Category string
	// Criteria replaces the search on EventUpdateCriteria.
	Criteria *Criteria
	// Artisan is the selected profile on EventSelectArtisan and on
	// EventContact from the result list.
	Artisan *models.ArtisanProfile
}

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrMissingPayload    = errors.New("missing event payload")
)

// transitions is the full navigation graph. "Back" edges are ordinary edges
// to a fixed screen; there is no history stack.
var transitions = map[Screen]map[EventKind]Screen{
	ScreenHome: {
		EventOpenSearch: ScreenSearchCriteria,
		EventOpenLogin:  ScreenLogin,
	},
	ScreenSearchCriteria: {
		EventBack:           ScreenHome,
		EventSearch:         ScreenResultList,
		EventUpdateCriteria: ScreenSearchCriteria,
	},
	ScreenResultList: {
		EventBack:          ScreenSearchCriteria,
		EventSelectArtisan: ScreenProfileDetail,
		EventContact:       ScreenContact,
	},
	ScreenProfileDetail: {
		EventBack:    ScreenResultList,
		EventContact: ScreenContact,
	},
	ScreenContact: {
		EventBack:     ScreenProfileDetail,
		EventComplete: ScreenHome,
	},
	ScreenLogin: {
		EventBack:     ScreenHome,
		EventLoggedIn: ScreenDashboard,
	},
	ScreenDashboard: {
		EventOpenProfile:      ScreenProfileEdit,
		EventOpenAvailability: ScreenAvailability,
		EventOpenRequests:     ScreenRequestsList,
		EventLogout:           ScreenHome,
	},
	ScreenProfileEdit:  {EventBack: ScreenDashboard},
	ScreenAvailability: {EventBack: ScreenDashboard},
	ScreenRequestsList: {EventBack: ScreenDashboard},
}

// Navigator holds the state of one interactive session: current screen,
// selected artisan and search criteria.
type Navigator struct {
	screen   Screen
	selected *models.ArtisanProfile
	criteria Criteria
}

// NewNavigator starts on the home screen.
func NewNavigator() *Navigator {
	return &Navigator{screen: ScreenHome}
}

func (n *Navigator) Screen() Screen { return n.screen }

// Selected returns the artisan picked from the result list, or nil.
func (n *Navigator) Selected() *models.ArtisanProfile { return n.selected }

func (n *Navigator) Criteria() Criteria { return n.criteria }

// Events lists the triggers accepted on the current screen, sorted.
func (n *Navigator) Events() []EventKind {
	out := make([]EventKind, 0, len(transitions[n.screen]))
	for k := range transitions[n.screen] {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Dispatch applies e. The state is unchanged when an error is returned.
func (n *Navigator) Dispatch(e Event) error {
	next, ok := transitions[n.screen][e.Kind]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e.Kind, n.screen)
	}

	switch e.Kind {
	case EventOpenSearch:
		if e.Category != "" {
			n.criteria.Category = e.Category
		}
	case EventUpdateCriteria:
		if e.Criteria == nil {
			return fmt.Errorf("%w: criteria", ErrMissingPayload)
		}
		n.criteria = *e.Criteria
	case EventSelectArtisan:
		if e.Artisan == nil {
			return fmt.Errorf("%w: artisan", ErrMissingPayload)
		}
		n.selected = e.Artisan
	case EventContact:
		switch {
		case e.Artisan != nil:
			n.selected = e.Artisan
		case n.selected == nil:
			return fmt.Errorf("%w: artisan", ErrMissingPayload)
		}
	}
	n.screen = next
	return nil
}
