package services

import (
	"testing"
	"time"

	"datamint/internal/curve"
	"datamint/internal/models"
	"datamint/internal/testutil"
)

func TestInitCurve(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		now := time.Unix(1_700_000_000, 0)

		err := svc.InitCurve(db, 1, 100000, now)
		testutil.AssertNoError(t, err)

		state, err := svc.GetState(1)
		testutil.AssertNoError(t, err)
		if state.InitialPrice != 100000 {
			t.Errorf("expected initial price 100000, got %d", state.InitialPrice)
		}
		if state.BasePrice != 100000 {
			t.Errorf("expected base price 100000, got %d", state.BasePrice)
		}
		if state.PurchaseCount != 0 {
			t.Errorf("expected purchase count 0, got %d", state.PurchaseCount)
		}
		if state.LastPurchaseAt != now.Unix() {
			t.Errorf("expected last purchase at %d, got %d", now.Unix(), state.LastPurchaseAt)
		}
	})

	t.Run("twice_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		now := time.Unix(1_700_000_000, 0)

		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, now))
		err := svc.InitCurve(db, 1, 200000, now)
		testutil.AssertAppError(t, err, "CURVE_ALREADY_INITIALIZED")

		// First initialization survives untouched.
		state, err := svc.GetState(1)
		testutil.AssertNoError(t, err)
		if state.BasePrice != 100000 {
			t.Errorf("expected base price 100000, got %d", state.BasePrice)
		}
	})

	t.Run("zero_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)

		err := svc.InitCurve(db, 1, 0, time.Unix(1_700_000_000, 0))
		testutil.AssertAppError(t, err, "INVALID_PRICE")
	})

	t.Run("negative_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)

		err := svc.InitCurve(db, 1, -5, time.Unix(1_700_000_000, 0))
		testutil.AssertAppError(t, err, "INVALID_PRICE")
	})

	t.Run("overflow_guard", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)

		err := svc.InitCurve(db, 1, curve.MaxPrice+1, time.Unix(1_700_000_000, 0))
		testutil.AssertAppError(t, err, "INVALID_PRICE")
	})
}

func TestGetState(t *testing.T) {
	t.Run("not_initialized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)

		_, err := svc.GetState(42)
		testutil.AssertAppError(t, err, "CURVE_NOT_INITIALIZED")
	})
}

func TestCurrentPrice(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)

	t.Run("not_initialized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)

		_, err := svc.CurrentPrice(42, start)
		testutil.AssertAppError(t, err, "CURVE_NOT_INITIALIZED")
	})

	t.Run("fresh_curve_returns_base", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, start))

		price, err := svc.CurrentPrice(1, start)
		testutil.AssertNoError(t, err)
		if price != 100000 {
			t.Errorf("expected 100000, got %d", price)
		}
	})

	t.Run("weekly_depreciation_compounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, start))

		oneWeek := start.Add(time.Duration(curve.WeekSeconds) * time.Second)
		price, err := svc.CurrentPrice(1, oneWeek)
		testutil.AssertNoError(t, err)
		if price != 90000 {
			t.Errorf("expected 90000 after one week, got %d", price)
		}

		twoWeeks := start.Add(2 * time.Duration(curve.WeekSeconds) * time.Second)
		price, err = svc.CurrentPrice(1, twoWeeks)
		testutil.AssertNoError(t, err)
		if price != 81000 {
			t.Errorf("expected 81000 after two weeks, got %d", price)
		}
	})

	t.Run("pure_read_no_mutation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, start))

		twoWeeks := start.Add(2 * time.Duration(curve.WeekSeconds) * time.Second)
		first, err := svc.CurrentPrice(1, twoWeeks)
		testutil.AssertNoError(t, err)
		second, err := svc.CurrentPrice(1, twoWeeks)
		testutil.AssertNoError(t, err)
		if first != second {
			t.Errorf("price query not idempotent: %d then %d", first, second)
		}

		var state models.CurveState
		if err := db.Where("dataset_id = ?", 1).First(&state).Error; err != nil {
			t.Fatalf("failed to read state: %v", err)
		}
		if state.BasePrice != 100000 || state.LastPurchaseAt != start.Unix() || state.PurchaseCount != 0 {
			t.Errorf("price query mutated stored state: %+v", state)
		}
	})
}

func TestRecordPurchase(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)

	t.Run("not_initialized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)

		_, err := svc.RecordPurchase(db, 42, start)
		testutil.AssertAppError(t, err, "CURVE_NOT_INITIALIZED")
	})

	t.Run("immediate_purchase_marks_up", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, start))

		pricePaid, err := svc.RecordPurchase(db, 1, start)
		testutil.AssertNoError(t, err)
		if pricePaid != 100000 {
			t.Errorf("expected price paid 100000, got %d", pricePaid)
		}

		state, err := svc.GetState(1)
		testutil.AssertNoError(t, err)
		if state.BasePrice != 150000 {
			t.Errorf("expected base 150000 after markup, got %d", state.BasePrice)
		}
		if state.PurchaseCount != 1 {
			t.Errorf("expected purchase count 1, got %d", state.PurchaseCount)
		}
		if state.LastPurchaseAt != start.Unix() {
			t.Errorf("expected last purchase at %d, got %d", start.Unix(), state.LastPurchaseAt)
		}
	})

	t.Run("depreciation_before_markup", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, start))

		// One idle week: price decays to 90000 before the purchase, and
		// the markup applies to the decayed price.
		oneWeek := start.Add(time.Duration(curve.WeekSeconds) * time.Second)
		pricePaid, err := svc.RecordPurchase(db, 1, oneWeek)
		testutil.AssertNoError(t, err)
		if pricePaid != 90000 {
			t.Errorf("expected price paid 90000, got %d", pricePaid)
		}

		state, err := svc.GetState(1)
		testutil.AssertNoError(t, err)
		if state.BasePrice != 135000 {
			t.Errorf("expected base 135000, got %d", state.BasePrice)
		}

		// Another idle week from the purchase.
		twoWeeks := oneWeek.Add(time.Duration(curve.WeekSeconds) * time.Second)
		price, err := svc.CurrentPrice(1, twoWeeks)
		testutil.AssertNoError(t, err)
		if price != 121500 {
			t.Errorf("expected 121500, got %d", price)
		}
	})

	t.Run("rapid_purchases_pin_base_at_ceiling", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100_000_000, start))

		// No idle weeks between purchases, so every markup compounds on
		// the full previous base. The stored base must stay positive and
		// within the overflow bound throughout.
		for i := 0; i < 40; i++ {
			pricePaid, err := svc.RecordPurchase(db, 1, start)
			testutil.AssertNoError(t, err)
			if pricePaid <= 0 || pricePaid > curve.MaxPrice {
				t.Fatalf("price paid out of range on purchase %d: %d", i+1, pricePaid)
			}
		}

		state, err := svc.GetState(1)
		testutil.AssertNoError(t, err)
		if state.BasePrice != curve.MaxPrice {
			t.Errorf("expected base pinned at %d, got %d", curve.MaxPrice, state.BasePrice)
		}
	})

	t.Run("fully_depreciated_curve_restarts_at_one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 1, start))

		// One idle week decays a one-micro-unit base to zero; the buyer
		// pays nothing, and the stored base restarts at one rather than
		// zero.
		oneWeek := start.Add(time.Duration(curve.WeekSeconds) * time.Second)
		pricePaid, err := svc.RecordPurchase(db, 1, oneWeek)
		testutil.AssertNoError(t, err)
		if pricePaid != 0 {
			t.Errorf("expected price paid 0, got %d", pricePaid)
		}

		state, err := svc.GetState(1)
		testutil.AssertNoError(t, err)
		if state.BasePrice != 1 {
			t.Errorf("expected base 1, got %d", state.BasePrice)
		}
	})

	t.Run("independent_curves", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCurveService(db)
		testutil.AssertNoError(t, svc.InitCurve(db, 1, 100000, start))
		testutil.AssertNoError(t, svc.InitCurve(db, 2, 250000, start))

		_, err := svc.RecordPurchase(db, 1, start)
		testutil.AssertNoError(t, err)

		state, err := svc.GetState(2)
		testutil.AssertNoError(t, err)
		if state.BasePrice != 250000 || state.PurchaseCount != 0 {
			t.Errorf("purchasing dataset 1 changed dataset 2's curve: %+v", state)
		}
	})
}
