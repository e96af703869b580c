package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		micro int64
		want  string
	}{
		{0, "0.000000"},
		{1, "0.000001"},
		{90000, "0.090000"},
		{1_500_000, "1.500000"},
		{-250_000, "-0.250000"},
	}
	for _, tc := range cases {
		if got := Format(tc.micro); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.micro, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("round_trips", func(t *testing.T) {
		got, err := Parse("1.500000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 1_500_000 {
			t.Errorf("expected 1500000, got %d", got)
		}
	})

	t.Run("rejects_sub_micro_precision", func(t *testing.T) {
		if _, err := Parse("0.0000001"); err == nil {
			t.Error("expected error for 7 decimal places")
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := Parse("not-a-number"); err == nil {
			t.Error("expected error for malformed input")
		}
	})
}
