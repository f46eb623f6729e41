package scheduling

import "testing"

func TestEstimateDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		packages    int
		teamSize    int
		paletteGood bool
		wantSeconds int
		wantString  string
	}{
		{name: "single worker good palette", packages: 150, teamSize: 1, paletteGood: true, wantSeconds: 6000, wantString: "1h40min0s"},
		{name: "team bonus reduces total", packages: 150, teamSize: 3, paletteGood: true, wantSeconds: 2400, wantString: "0h40min0s"},
		{name: "palette penalty added", packages: 10, teamSize: 1, paletteGood: false, wantSeconds: 1600, wantString: "0h26min40s"},
		{name: "clamped at zero", packages: 5, teamSize: 4, paletteGood: true, wantSeconds: 0, wantString: "0h0min0s"},
		{name: "zero packages bad palette", packages: 0, teamSize: 1, paletteGood: false, wantSeconds: 1200, wantString: "0h20min0s"},
		{name: "negative packages coerce to zero", packages: -20, teamSize: 1, paletteGood: true, wantSeconds: 0, wantString: "0h0min0s"},
		{name: "team size below one coerces to one", packages: 90, teamSize: 0, paletteGood: true, wantSeconds: 3600, wantString: "1h0min0s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateDuration(tc.packages, tc.teamSize, tc.paletteGood)
			if got.TotalSeconds != tc.wantSeconds {
				t.Fatalf("TotalSeconds = %d, want %d", got.TotalSeconds, tc.wantSeconds)
			}
			if got.String() != tc.wantString {
				t.Fatalf("String() = %q, want %q", got.String(), tc.wantString)
			}
		})
	}
}

func TestEstimateDurationMonotonicity(t *testing.T) {
	t.Parallel()

	// Non-decreasing in package count.
	previous := -1
	for packages := 0; packages <= 200; packages += 10 {
		total := EstimateDuration(packages, 2, false).TotalSeconds
		if total < previous {
			t.Fatalf("duration decreased from %d to %d at %d packages", previous, total, packages)
		}
		previous = total
	}

	// Non-increasing in team size.
	previous = EstimateDuration(300, 1, false).TotalSeconds
	for teamSize := 2; teamSize <= 8; teamSize++ {
		total := EstimateDuration(300, teamSize, false).TotalSeconds
		if total > previous {
			t.Fatalf("duration increased from %d to %d at team size %d", previous, total, teamSize)
		}
		if total < 0 {
			t.Fatalf("duration went negative at team size %d", teamSize)
		}
		previous = total
	}
}

func TestEstimateQuick(t *testing.T) {
	t.Parallel()

	// 100 packages * 42s * 1.2 = 5040s.
	got := EstimateQuick(100)
	if got.TotalSeconds != 5040 {
		t.Fatalf("TotalSeconds = %d, want 5040", got.TotalSeconds)
	}
	if got.String() != "1h24min0s" {
		t.Fatalf("String() = %q, want %q", got.String(), "1h24min0s")
	}

	if EstimateQuick(-5).TotalSeconds != 0 {
		t.Fatal("negative package count should coerce to zero")
	}
}

func TestEstimateRequiredMinutes(t *testing.T) {
	t.Parallel()

	if got := newEstimate(6000).RequiredMinutes(); got != 100 {
		t.Fatalf("RequiredMinutes = %d, want 100", got)
	}
	// Partial minutes round up.
	if got := newEstimate(1600).RequiredMinutes(); got != 27 {
		t.Fatalf("RequiredMinutes = %d, want 27", got)
	}
	if got := newEstimate(0).RequiredMinutes(); got != 0 {
		t.Fatalf("RequiredMinutes = %d, want 0", got)
	}
}

func TestEstimateEndTime(t *testing.T) {
	t.Parallel()

	estimate := EstimateDuration(150, 1, true) // 100 minutes

	end, wrapped := estimate.EndTime(ParseTimeOfDay("09:30"))
	if wrapped {
		t.Fatal("mid-day task should not wrap")
	}
	if end.String() != "11:10" {
		t.Fatalf("end = %q, want %q", end.String(), "11:10")
	}

	end, wrapped = estimate.EndTime(ParseTimeOfDay("23:00"))
	if !wrapped {
		t.Fatal("task crossing midnight should report wrap")
	}
	if end != EndOfDay {
		t.Fatalf("wrapped end = %d, want EndOfDay", end)
	}
}
