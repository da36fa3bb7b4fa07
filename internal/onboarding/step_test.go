package onboarding

import (
	"context"
	"testing"

	"colabatr_backend/internal/cities"
	"colabatr_backend/internal/events"
	"colabatr_backend/platform/apperr"
	"colabatr_backend/platform/logger"

	"github.com/google/uuid"
)

func testDataset() *cities.Dataset {
	return cities.NewDataset([]cities.Entry{
		{City: "Mumbai", State: "Maharashtra", Pincode: "400001"},
		{City: "Pune", State: "Maharashtra", Pincode: "411001"},
		{City: "Delhi", State: "Delhi", Pincode: "110001"},
	})
}

func newListStep() *Step {
	return newStep(ModeList, testDataset(), nil)
}

func TestStepListSelectionFlow(t *testing.T) {
	step := newListStep()

	// Typing a state fragment narrows the dropdown to both Maharashtra cities.
	view := step.Input("mah")
	if !view.DropdownOpen {
		t.Fatal("dropdown must open on input")
	}
	if len(view.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2 (Mumbai, Pune)", len(view.Candidates))
	}
	if view.Candidates[0].City != "Mumbai" || view.Candidates[1].City != "Pune" {
		t.Fatalf("candidates = %v, want dataset order [Mumbai Pune]", view.Candidates)
	}

	// Picking the second candidate commits it with the canonical display text.
	view, err := step.Pick("Pune", "Maharashtra", "411001")
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if view.Query != "Pune, Maharashtra" {
		t.Errorf("query = %q, want %q", view.Query, "Pune, Maharashtra")
	}
	if view.DropdownOpen {
		t.Error("pick must close the dropdown")
	}
	if !view.ContinueEnabled {
		t.Error("continue must be enabled after a pick")
	}

	record, err := step.Continue()
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	want := LocationRecord{City: "Pune", State: "Maharashtra", Pincode: "411001"}
	if record != want {
		t.Errorf("record = %+v, want %+v", record, want)
	}
}

func TestStepPickRequiresDatasetMembership(t *testing.T) {
	step := newListStep()
	step.Input("mum")

	_, err := step.Pick("Mumbai", "Gujarat", "400001")
	if err == nil {
		t.Fatal("picking a tuple outside the dataset must fail")
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("error kind = %v, want validation", apperr.GetKind(err))
	}
	if view := step.View(); view.Committed != nil {
		t.Error("a rejected pick must not commit anything")
	}
}

func TestStepPickWinsOverBlur(t *testing.T) {
	step := newListStep()
	step.Input("pun")

	// The blur lands first and closes the dropdown; the pick must still be
	// accepted.
	view := step.Blur()
	if view.DropdownOpen {
		t.Fatal("blur must close the dropdown")
	}

	view, err := step.Pick("Pune", "Maharashtra", "411001")
	if err != nil {
		t.Fatalf("pick after blur must succeed: %v", err)
	}
	if view.Committed == nil || view.Committed.City != "Pune" {
		t.Errorf("committed = %+v, want Pune", view.Committed)
	}
	if view.ShowRequiredMessage {
		t.Error("required message must clear once the pick lands")
	}
}

func TestStepContinueWithoutSelection(t *testing.T) {
	step := newListStep()
	step.Input("mum")
	step.Blur()

	if _, err := step.Continue(); err == nil {
		t.Fatal("continue without a committed record must fail")
	}

	// With text typed the required message stays hidden; it appears once the
	// field is emptied.
	if view := step.View(); view.ShowRequiredMessage {
		t.Error("typed-but-unpicked text must suppress the required message")
	}
	if view := step.Clear(); !view.ShowRequiredMessage {
		t.Error("touched step with an empty query must show the required message")
	}
}

func TestStepClearReopensFullDataset(t *testing.T) {
	step := newListStep()
	step.Pick("Delhi", "Delhi", "110001")

	view := step.Clear()
	if view.Committed != nil {
		t.Error("clear must drop the committed record")
	}
	if !view.DropdownOpen {
		t.Error("clear must re-open the dropdown")
	}
	if len(view.Candidates) != 3 {
		t.Errorf("candidates = %d, want the full dataset", len(view.Candidates))
	}
}

func TestStepResolveRejectedInListMode(t *testing.T) {
	step := newListStep()

	_, err := step.ResolveCoordinate(context.Background(), 19.07, 72.87)
	if err == nil {
		t.Fatal("resolve must be rejected outside map mode")
	}
	if apperr.GetKind(err) != apperr.KindBadRequest {
		t.Errorf("error kind = %v, want bad request", apperr.GetKind(err))
	}
}

func TestStepPickRejectedInMapMode(t *testing.T) {
	step := newStep(ModeMap, testDataset(), nil)

	_, err := step.Pick("Mumbai", "Maharashtra", "400001")
	if err == nil {
		t.Fatal("pick must be rejected outside list mode")
	}
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("error = %v, want bad request", err)
	}
}

func TestServiceContinueEmitsRecordOnce(t *testing.T) {
	log := logger.New("development")
	svc := NewService(ModeList, testDataset(), nil, events.NewInMemoryBus(log), log)

	var (
		calls    int
		gotID    uuid.UUID
		gotCity  string
		gotState string
	)
	svc.SetSelectCallback(func(ctx context.Context, userID uuid.UUID, record LocationRecord) {
		calls++
		gotID = userID
		gotCity = record.City
		gotState = record.State
	})

	userID := uuid.New()
	step := svc.StepFor(userID)
	step.Input("mum")
	if _, err := step.Pick("Mumbai", "Maharashtra", "400001"); err != nil {
		t.Fatalf("Pick: %v", err)
	}

	record, err := svc.Continue(context.Background(), userID)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback invoked %d times, want exactly once", calls)
	}
	if gotID != userID || gotCity != "Mumbai" || gotState != "Maharashtra" {
		t.Errorf("callback got (%v, %s, %s), want (%v, Mumbai, Maharashtra)", gotID, gotCity, gotState, userID)
	}
	if record.DisplayText() != "Mumbai, Maharashtra" {
		t.Errorf("display text = %q", record.DisplayText())
	}

	// The step is destroyed on continue; the next access starts fresh.
	fresh := svc.StepFor(userID).View()
	if fresh.Committed != nil || fresh.Query != "" {
		t.Errorf("step after continue = %+v, want a fresh step", fresh)
	}
}

func TestServiceContinueWithoutSelectionLeavesStep(t *testing.T) {
	log := logger.New("development")
	svc := NewService(ModeList, testDataset(), nil, events.NewInMemoryBus(log), log)
	svc.SetSelectCallback(func(context.Context, uuid.UUID, LocationRecord) {
		t.Fatal("callback must not fire for a failed continue")
	})

	userID := uuid.New()
	svc.StepFor(userID).Input("mum")

	if _, err := svc.Continue(context.Background(), userID); err == nil {
		t.Fatal("continue without a selection must fail")
	}

	// The typed query survives a rejected continue.
	if view := svc.StepFor(userID).View(); view.Query != "mum" {
		t.Errorf("query after failed continue = %q, want %q", view.Query, "mum")
	}
}
