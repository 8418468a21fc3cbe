package client

import (
	"errors"
	"testing"

	"github.com/diewo77/go-artisans/internal/models"
)

func mustDispatch(t *testing.T, n *Navigator, e Event, want Screen) {
	t.Helper()
	if err := n.Dispatch(e); err != nil {
		t.Fatalf("dispatch %s from %s: %v", e.Kind, n.Screen(), err)
	}
	if n.Screen() != want {
		t.Fatalf("after %s: screen %s, want %s", e.Kind, n.Screen(), want)
	}
}

func TestNavigator_ClientJourney(t *testing.T) {
	n := NewNavigator()
	if n.Screen() != ScreenHome {
		t.Fatalf("start screen %s", n.Screen())
	}
	artisan := &models.ArtisanProfile{ID: "a1", Name: "Jean"}

	mustDispatch(t, n, Event{Kind: EventOpenSearch, Category: models.TradePlumber}, ScreenSearchCriteria)
	if n.Criteria().Category != models.TradePlumber {
		t.Fatalf("category not kept: %+v", n.Criteria())
	}
	crit := Criteria{Category: models.TradePlumber, Filters: Filters{MinRating: 4}}
	mustDispatch(t, n, Event{Kind: EventUpdateCriteria, Criteria: &crit}, ScreenSearchCriteria)
	mustDispatch(t, n, Event{Kind: EventSearch}, ScreenResultList)
	mustDispatch(t, n, Event{Kind: EventSelectArtisan, Artisan: artisan}, ScreenProfileDetail)
	if n.Selected() != artisan {
		t.Fatal("selected artisan not kept")
	}
	mustDispatch(t, n, Event{Kind: EventContact}, ScreenContact)
	mustDispatch(t, n, Event{Kind: EventBack}, ScreenProfileDetail)
	mustDispatch(t, n, Event{Kind: EventBack}, ScreenResultList)
	mustDispatch(t, n, Event{Kind: EventBack}, ScreenSearchCriteria)
	if n.Criteria().Filters.MinRating != 4 {
		t.Fatal("criteria lost on back navigation")
	}
	mustDispatch(t, n, Event{Kind: EventSearch}, ScreenResultList)
	mustDispatch(t, n, Event{Kind: EventContact, Artisan: artisan}, ScreenContact)
	mustDispatch(t, n, Event{Kind: EventComplete}, ScreenHome)
}

func TestNavigator_ArtisanJourney(t *testing.T) {
	n := NewNavigator()
	mustDispatch(t, n, Event{Kind: EventOpenLogin}, ScreenLogin)
	mustDispatch(t, n, Event{Kind: EventBack}, ScreenHome)
	mustDispatch(t, n, Event{Kind: EventOpenLogin}, ScreenLogin)
	mustDispatch(t, n, Event{Kind: EventLoggedIn}, ScreenDashboard)
	for _, open := range []struct {
		kind EventKind
		to   Screen
	}{
		{EventOpenProfile, ScreenProfileEdit},
		{EventOpenAvailability, ScreenAvailability},
		{EventOpenRequests, ScreenRequestsList},
	} {
		mustDispatch(t, n, Event{Kind: open.kind}, open.to)
		mustDispatch(t, n, Event{Kind: EventBack}, ScreenDashboard)
	}
	mustDispatch(t, n, Event{Kind: EventLogout}, ScreenHome)
}

func TestNavigator_RejectsUnknownEdges(t *testing.T) {
	n := NewNavigator()
	for _, k := range []EventKind{EventBack, EventSearch, EventLoggedIn, EventLogout, EventContact} {
		if err := n.Dispatch(Event{Kind: k}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s on home: got %v", k, err)
		}
	}
	if n.Screen() != ScreenHome {
		t.Fatalf("state changed to %s", n.Screen())
	}
}

func TestNavigator_PayloadRequired(t *testing.T) {
	n := NewNavigator()
	mustDispatch(t, n, Event{Kind: EventOpenSearch}, ScreenSearchCriteria)
	if err := n.Dispatch(Event{Kind: EventUpdateCriteria}); !errors.Is(err, ErrMissingPayload) {
		t.Fatalf("update without criteria: %v", err)
	}
	mustDispatch(t, n, Event{Kind: EventSearch}, ScreenResultList)
	if err := n.Dispatch(Event{Kind: EventSelectArtisan}); !errors.Is(err, ErrMissingPayload) {
		t.Fatalf("select without artisan: %v", err)
	}
	if err := n.Dispatch(Event{Kind: EventContact}); !errors.Is(err, ErrMissingPayload) {
		t.Fatalf("contact without artisan: %v", err)
	}
	if n.Screen() != ScreenResultList {
		t.Fatalf("state changed to %s", n.Screen())
	}
}

func TestNavigator_OpenSearchKeepsCategoryWhenEmpty(t *testing.T) {
	n := NewNavigator()
	mustDispatch(t, n, Event{Kind: EventOpenSearch, Category: models.TradePainter}, ScreenSearchCriteria)
	mustDispatch(t, n, Event{Kind: EventBack}, ScreenHome)
	mustDispatch(t, n, Event{Kind: EventOpenSearch}, ScreenSearchCriteria)
	if n.Criteria().Category != models.TradePainter {
		t.Fatalf("category reset: %q", n.Criteria().Category)
	}
}

func TestNavigator_Events(t *testing.T) {
	n := NewNavigator()
	got := n.Events()
	if len(got) != 2 || got[0] != EventOpenLogin || got[1] != EventOpenSearch {
		t.Fatalf("unexpected events %v", got)
	}
}
