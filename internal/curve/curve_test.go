package curve

import "testing"

func TestWeeksElapsed(t *testing.T) {
	cases := []struct {
		name string
		last int64
		now  int64
		want int64
	}{
		{"same_instant", 1000, 1000, 0},
		{"under_one_week", 1000, 1000 + WeekSeconds - 1, 0},
		{"exact_boundary", 1000, 1000 + WeekSeconds, 1},
		{"one_second_past", 1000, 1000 + WeekSeconds + 1, 1},
		{"two_weeks", 1000, 1000 + 2*WeekSeconds, 2},
		{"clock_went_backwards", 1000, 500, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeeksElapsed(tc.last, tc.now); got != tc.want {
				t.Errorf("WeeksElapsed(%d, %d) = %d, want %d", tc.last, tc.now, got, tc.want)
			}
		})
	}
}

func TestDepreciate(t *testing.T) {
	t.Run("zero_weeks", func(t *testing.T) {
		if got := Depreciate(100000, 0); got != 100000 {
			t.Errorf("expected 100000, got %d", got)
		}
	})

	t.Run("one_week", func(t *testing.T) {
		if got := Depreciate(100000, 1); got != 90000 {
			t.Errorf("expected 90000, got %d", got)
		}
	})

	t.Run("compounds_with_truncation", func(t *testing.T) {
		// 90000 * 0.9, not 100000 * 0.81
		if got := Depreciate(100000, 2); got != 81000 {
			t.Errorf("expected 81000, got %d", got)
		}
	})

	t.Run("per_week_truncation_carries", func(t *testing.T) {
		// 15 -> floor(13.5) = 13 -> floor(11.7) = 11. A single 0.81
		// multiplication would give floor(12.15) = 12 instead.
		if got := Depreciate(15, 2); got != 11 {
			t.Errorf("expected 11, got %d", got)
		}
	})

	t.Run("decays_to_zero", func(t *testing.T) {
		if got := Depreciate(1, 1); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		// Once zero, further weeks stay zero without looping forever.
		if got := Depreciate(100, 1_000_000); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestMarkup(t *testing.T) {
	cases := []struct {
		price int64
		want  int64
	}{
		{100000, 150000},
		{90000, 135000},
		{1, 1},   // floor(1.5) = 1
		{3, 4},   // floor(4.5) = 4
		{0, 0},
	}
	for _, tc := range cases {
		if got := Markup(tc.price); got != tc.want {
			t.Errorf("Markup(%d) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestNextBase(t *testing.T) {
	cases := []struct {
		name string
		paid int64
		want int64
	}{
		{"marks_up", 90000, 135000},
		{"ceiling_at_max_price", MaxPrice, MaxPrice},
		{"near_ceiling_clamps", MaxPrice - 1, MaxPrice},
		{"fully_depreciated_restarts_at_one", 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextBase(tc.paid); got != tc.want {
				t.Errorf("NextBase(%d) = %d, want %d", tc.paid, got, tc.want)
			}
		})
	}

	t.Run("repeated_purchases_never_overflow", func(t *testing.T) {
		// Back-to-back purchases (no idle weeks) compound the markup; an
		// unclamped 1.5x would push a 1e8 base past MaxInt64 within ~30
		// steps and wrap negative.
		base := int64(100_000_000)
		for i := 0; i < 64; i++ {
			base = NextBase(base)
			if base <= 0 || base > MaxPrice {
				t.Fatalf("base out of range after %d purchases: %d", i+1, base)
			}
		}
		if base != MaxPrice {
			t.Errorf("expected base pinned at MaxPrice, got %d", base)
		}
	})
}

func TestPriceAt(t *testing.T) {
	t.Run("depreciation_then_markup_cycle", func(t *testing.T) {
		// Base 100000, one week idle -> 90000. Purchase at 90000 marks the
		// base up to 135000; another full week idle -> 121500.
		base := int64(100000)
		start := int64(1_700_000_000)

		price := PriceAt(base, start, start+WeekSeconds)
		if price != 90000 {
			t.Fatalf("expected 90000 after one week, got %d", price)
		}

		newBase := Markup(price)
		if newBase != 135000 {
			t.Fatalf("expected new base 135000, got %d", newBase)
		}

		price = PriceAt(newBase, start+WeekSeconds, start+2*WeekSeconds)
		if price != 121500 {
			t.Fatalf("expected 121500 after another week, got %d", price)
		}
	})

	t.Run("non_monotonic_clock", func(t *testing.T) {
		if got := PriceAt(100000, 2000, 1000); got != 100000 {
			t.Errorf("expected base price with clock skew, got %d", got)
		}
	})
}
