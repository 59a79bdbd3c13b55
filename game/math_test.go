package game

import "testing"

func TestApproxEqualRel(t *testing.T) {
	if !ApproxEqualRel(10, 9.05, EnemyArrivalFactor) {
		t.Fatalf("expected 9.05 to be within 10%% of 10")
	}
	if ApproxEqualRel(10, 8.9, EnemyArrivalFactor) {
		t.Fatalf("expected 8.9 not to be within 10%% of 10")
	}
	if ApproxEqualRel(0, 0.01, EnemyArrivalFactor) {
		t.Fatalf("expected no tolerance around zero")
	}
	if !ApproxEqualRel(0, 0, EnemyArrivalFactor) {
		t.Fatalf("expected exact zero to match")
	}
}

func TestStepToward(t *testing.T) {
	for _, tc := range []struct {
		v, target, want float32
	}{
		{0, 1, 0.05},
		{1, 0, 0.95},
		{0.5, 0.5, 0.5},
	} {
		if got := StepToward(tc.v, tc.target, EnemyStep); !Float32ApproxEq(got, tc.want) {
			t.Fatalf("StepToward(%f, %f) = %f, expected %f", tc.v, tc.target, got, tc.want)
		}
	}
}

func TestStatistics(t *testing.T) {
	data := []float32{4, 1, 3, 2}
	if got := Mean(data); got != 2.5 {
		t.Fatalf("expected mean 2.5, got %f", got)
	}
	if got := Median(data); got != 2.5 {
		t.Fatalf("expected median 2.5, got %f", got)
	}
	if data[0] != 4 {
		t.Fatalf("median must not reorder its input")
	}
	if got := Median(data[:3]); got != 3 {
		t.Fatalf("expected median 3, got %f", got)
	}
	if got := Max(data); got != 4 {
		t.Fatalf("expected max 4, got %f", got)
	}
	if Mean(nil) != 0 || Median(nil) != 0 || Max(nil) != 0 {
		t.Fatalf("expected zero statistics for empty input")
	}
}
