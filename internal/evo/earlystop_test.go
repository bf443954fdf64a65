package evo

import "testing"

func TestEarlyStopperFiresAfterPatience(t *testing.T) {
	stopper := NewEarlyStopper(0.5, 3)

	// Starting from the zero previous value, these all change by less
	// than delta.
	if stopper.Update(0.1) {
		t.Fatal("should not fire after 1 stagnant generation")
	}
	if stopper.Update(0.2) {
		t.Fatal("should not fire after 2 stagnant generations")
	}
	if !stopper.Update(0.3) {
		t.Fatal("should fire after 3 stagnant generations")
	}
}

func TestEarlyStopperResetsOnImprovement(t *testing.T) {
	stopper := NewEarlyStopper(0.5, 2)

	if stopper.Update(0.1) {
		t.Fatal("premature stop")
	}
	// Jump larger than delta resets the streak.
	if stopper.Update(5.0) {
		t.Fatal("improvement must reset the streak")
	}
	if stopper.Update(5.1) {
		t.Fatal("streak is 1 after reset")
	}
	if !stopper.Update(5.2) {
		t.Fatal("streak reached patience again")
	}
}

func TestEarlyStopperAlwaysStoresPrevious(t *testing.T) {
	stopper := NewEarlyStopper(1.0, 10)

	stopper.Update(100) // change of 100, streak reset, previous now 100
	if stopper.stagnation != 0 {
		t.Fatalf("expected streak 0, got %d", stopper.stagnation)
	}
	stopper.Update(100.5) // within delta of the stored 100
	if stopper.stagnation != 1 {
		t.Fatalf("expected streak 1, got %d", stopper.stagnation)
	}
	if stopper.previous != 100.5 {
		t.Fatalf("previous must track every update, got %v", stopper.previous)
	}
}
