package Pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// two-decimal random value in [0, max).
func randAmount(r *rand.Rand, max int64) decimal.Decimal {
	return decimal.New(r.Int63n(max*100), -2)
}

func TestComputeLine_OrderScenario(t *testing.T) {
	got := ComputeLine(dec("10"), dec("100"), dec("5"), dec("18"))

	cases := []struct {
		name     string
		got      decimal.Decimal
		expected string
	}{
		{"discount_amount", got.DiscountAmount, "50"},
		{"taxable_amount", got.TaxableAmount, "950"},
		{"tax_amount", got.TaxAmount, "171"},
		{"line_total", got.LineTotal, "1121"},
	}
	for _, tc := range cases {
		if !tc.got.Equal(dec(tc.expected)) {
			t.Errorf("%s = %s, expected %s", tc.name, tc.got, tc.expected)
		}
	}
}

func TestComputeLine_MatchesClosedForm(t *testing.T) {
	// line_total must equal qty*price*(1-disc/100)*(1+tax/100) for any input.
	r := rand.New(rand.NewSource(42))
	one := decimal.NewFromInt(1)

	for i := 0; i < 50; i++ {
		qty := randAmount(r, 1000)
		price := randAmount(r, 10000)
		disc := decimal.New(r.Int63n(10001), -2) // [0, 100]
		tax := decimal.New(r.Int63n(4001), -2)   // [0, 40]

		got := ComputeLine(qty, price, disc, tax)
		expected := qty.Mul(price).
			Mul(one.Sub(disc.Div(hundred))).
			Mul(one.Add(tax.Div(hundred)))

		if !got.LineTotal.Equal(expected) {
			t.Fatalf("case %d: qty=%s price=%s disc=%s tax=%s: line_total=%s, closed form=%s",
				i, qty, price, disc, tax, got.LineTotal, expected)
		}
	}
}

func TestComputeLine_Idempotent(t *testing.T) {
	a := ComputeLine(dec("3.5"), dec("42.10"), dec("12.5"), dec("18"))
	b := ComputeLine(dec("3.5"), dec("42.10"), dec("12.5"), dec("18"))
	if !a.LineTotal.Equal(b.LineTotal) || !a.DiscountAmount.Equal(b.DiscountAmount) ||
		!a.TaxableAmount.Equal(b.TaxableAmount) || !a.TaxAmount.Equal(b.TaxAmount) {
		t.Fatalf("recomputation diverged: %+v vs %+v", a, b)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	lines := make([]LineBreakdown, 20)
	for i := range lines {
		lines[i] = ComputeLine(randAmount(r, 100), randAmount(r, 5000),
			decimal.New(r.Int63n(10001), -2), decimal.New(r.Int63n(4001), -2))
	}
	want := Aggregate(lines)

	for trial := 0; trial < 10; trial++ {
		shuffled := make([]LineBreakdown, len(lines))
		copy(shuffled, lines)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Aggregate(shuffled)
		if !got.GrossAmount.Equal(want.GrossAmount) || !got.DiscountAmount.Equal(want.DiscountAmount) ||
			!got.TaxAmount.Equal(want.TaxAmount) || !got.NetAmount.Equal(want.NetAmount) {
			t.Fatalf("trial %d: permuted totals %+v differ from %+v", trial, got, want)
		}
	}
}

func TestAggregate_HeaderIdentity(t *testing.T) {
	// net = gross - discount + tax, for every generated document.
	r := rand.New(rand.NewSource(99))

	for doc := 0; doc < 25; doc++ {
		n := 1 + r.Intn(15)
		lines := make([]LineBreakdown, n)
		for i := range lines {
			lines[i] = ComputeLine(randAmount(r, 100), randAmount(r, 5000),
				decimal.New(r.Int63n(10001), -2), decimal.New(r.Int63n(4001), -2))
		}

		totals := Aggregate(lines)
		identity := totals.GrossAmount.Sub(totals.DiscountAmount).Add(totals.TaxAmount)
		if !totals.NetAmount.Equal(identity) {
			t.Fatalf("doc %d: net=%s but gross-discount+tax=%s", doc, totals.NetAmount, identity)
		}
	}
}

func TestAggregate_ThreeLineScenario(t *testing.T) {
	lines := []LineBreakdown{
		{LineTotal: dec("100.00")},
		{LineTotal: dec("250.50")},
		{LineTotal: dec("75.25")},
	}
	totals := Aggregate(lines)
	if !totals.NetAmount.Equal(dec("425.75")) {
		t.Fatalf("net_amount = %s, expected 425.75", totals.NetAmount)
	}
}

func TestBalance(t *testing.T) {
	if got := Balance(dec("5000"), dec("3000")); !got.Equal(dec("2000")) {
		t.Fatalf("balance = %s, expected 2000", got)
	}
}

func TestCoerceNonNegative(t *testing.T) {
	if got := CoerceNonNegative(dec("-4.2")); !got.IsZero() {
		t.Fatalf("negative input should coerce to zero, got %s", got)
	}
	if got := CoerceNonNegative(dec("4.2")); !got.Equal(dec("4.2")) {
		t.Fatalf("positive input should pass through, got %s", got)
	}
}
