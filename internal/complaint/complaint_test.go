package complaint

import (
	"errors"
	"testing"
)

func TestCategoriesAreUniqueAndValid(t *testing.T) {
	seen := map[Category]struct{}{}
	for _, c := range Categories() {
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate category %q", c)
		}
		seen[c] = struct{}{}
		if !c.Valid() {
			t.Fatalf("expected %q valid", c)
		}
	}
	if Category("").Valid() || Category("LOST_PROPERTY").Valid() {
		t.Fatalf("expected unknown categories to be invalid")
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryStaffBehaviour.Label(); got != "Staff behaviour" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusInProgress}:  true,
		{StatusPending, StatusRejected}:    true,
		{StatusInProgress, StatusResolved}: true,
		{StatusInProgress, StatusRejected}: true,
	}
	for _, from := range Statuses() {
		for _, to := range Statuses() {
			want := allowed[[2]Status{from, to}]
			if got := from.CanTransition(to); got != want {
				t.Fatalf("%s -> %s: got %v want %v", from, to, got, want)
			}
		}
	}
	if !StatusResolved.Terminal() || !StatusRejected.Terminal() {
		t.Fatalf("expected resolved and rejected to be terminal")
	}
	if StatusPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
}

func TestTransitionErrorWrapsSentinel(t *testing.T) {
	err := TransitionError(StatusResolved, StatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	err := Validate("  ", "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range []Field{FieldTitle, FieldDescription, FieldCategory} {
		if !verr.Has(f) {
			t.Fatalf("expected %s in %v", f, verr.Fields)
		}
	}
	if got := verr.Error(); got != "title, description, category are required" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidateSingleField(t *testing.T) {
	err := Validate("Late bus", "Bus 12", "")
	if err == nil || err.Error() != "category is required" {
		t.Fatalf("unexpected error %v", err)
	}
	if err := Validate("Late bus", "Bus 12", CategoryDelay); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
}
