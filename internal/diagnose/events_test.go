package diagnose

import (
	"testing"

	"podscout/internal/snapshot"
)

func TestFilterEvents_WarningOnly(t *testing.T) {
	events := []snapshot.EventRecord{
		{Type: snapshot.EventNormal, Reason: "Scheduled", Object: snapshot.ObjectRef{Name: "p1"}},
		{Type: snapshot.EventNormal, Reason: "Pulling", Object: snapshot.ObjectRef{Name: "p1"}},
		{Type: snapshot.EventNormal, Reason: "Started", Object: snapshot.ObjectRef{Name: "p1"}},
		{Type: snapshot.EventWarning, Reason: "FailedScheduling", Message: "0/3 nodes are available", Object: snapshot.ObjectRef{Name: "p1"}},
	}

	got := FilterEvents(events, "")
	if len(got) != 1 {
		t.Fatalf("namespace scope: got %d issues, want 1", len(got))
	}
	if got[0].Kind != KindWarningEvent {
		t.Errorf("kind = %v, want WarningEvent", got[0].Kind)
	}
	if got[0].Detail != "warning event: FailedScheduling - 0/3 nodes are available" {
		t.Errorf("detail = %q", got[0].Detail)
	}

	if got := FilterEvents(events, "p2"); len(got) != 0 {
		t.Errorf("pod p2 scope: got %v, want empty", got)
	}
}

func TestFilterEvents_UnknownWarningReasonSkipped(t *testing.T) {
	events := []snapshot.EventRecord{
		{Type: snapshot.EventWarning, Reason: "BackOff", Object: snapshot.ObjectRef{Name: "p1"}},
		{Type: snapshot.EventWarning, Reason: "FailedMount", Object: snapshot.ObjectRef{Name: "p1"}},
	}
	got := FilterEvents(events, "p1")
	if len(got) != 1 || got[0].Detail != "warning event: FailedMount - " {
		t.Errorf("got %v, want only the FailedMount issue", got)
	}
}

func TestFilterEvents_Empty(t *testing.T) {
	if got := FilterEvents(nil, "p1"); len(got) != 0 {
		t.Errorf("FilterEvents(nil) = %v, want empty", got)
	}
}
