package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestCardinalConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		angle    Angle
		sin, cos float64
		deg      int
	}{
		{"north", Deg0, 0, 1, 0},
		{"east", Deg90, 1, 0, 90},
		{"south", Deg180, 0, -1, -180},
		{"west", Deg270, -1, 0, -90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.angle.Sin() != tc.sin || tc.angle.Cos() != tc.cos {
				t.Errorf("components (%v, %v), want (%v, %v)",
					tc.angle.Sin(), tc.angle.Cos(), tc.sin, tc.cos)
			}
			if got := tc.angle.ToIntDeg(); got != tc.deg {
				t.Errorf("ToIntDeg() = %d, want %d", got, tc.deg)
			}
		})
	}
}

func TestFromDegRoundTrip(t *testing.T) {
	t.Parallel()

	for deg := -180; deg < 180; deg += 7 {
		if got := FromDeg(float64(deg)).ToIntDeg(); got != deg {
			t.Errorf("FromDeg(%d).ToIntDeg() = %d", deg, got)
		}
	}
	// Degrees wrap into [-180, 180).
	if got := FromDeg(180).ToIntDeg(); got != -180 {
		t.Errorf("FromDeg(180).ToIntDeg() = %d, want -180", got)
	}
	if got := FromDeg(270).ToIntDeg(); got != -90 {
		t.Errorf("FromDeg(270).ToIntDeg() = %d, want -90", got)
	}
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b float64
		sum  int
		diff int
	}{
		{30, 60, 90, -30},
		{90, 90, -180, 0},
		{170, 30, -160, 140},
		{-170, -30, 160, -140},
		{0, 0, 0, 0},
	}
	for _, tc := range tests {
		a := FromDeg(tc.a)
		b := FromDeg(tc.b)
		if got := a.Add(b).ToIntDeg(); got != tc.sum {
			t.Errorf("%v + %v = %d, want %d", tc.a, tc.b, got, tc.sum)
		}
		if got := a.Sub(b).ToIntDeg(); got != tc.diff {
			t.Errorf("%v - %v = %d, want %d", tc.a, tc.b, got, tc.diff)
		}
	}
}

func TestNegOpposite(t *testing.T) {
	t.Parallel()

	a := FromDeg(30)
	if got := a.Neg().ToIntDeg(); got != -30 {
		t.Errorf("Neg = %d, want -30", got)
	}
	if got := a.Opposite().ToIntDeg(); got != -150 {
		t.Errorf("Opposite = %d, want -150", got)
	}
	if !Deg90.Opposite().Equal(Deg270) {
		t.Error("east opposite should be west")
	}
}

func TestPositiveNegative(t *testing.T) {
	t.Parallel()

	if !FromDeg(30).Positive() || FromDeg(30).Negative() {
		t.Error("30 deg should be positive")
	}
	if !FromDeg(-30).Negative() || FromDeg(-30).Positive() {
		t.Error("-30 deg should be negative")
	}
	if Deg0.Positive() || Deg0.Negative() {
		t.Error("0 deg should be neither")
	}
	if !Deg180.Negative() {
		t.Error("-180 deg should be negative")
	}
}

func TestMul(t *testing.T) {
	t.Parallel()

	if got := FromDeg(30).Mul(2).ToIntDeg(); got != 60 {
		t.Errorf("30 * 2 = %d, want 60", got)
	}
	if got := FromDeg(-45).Mul(0.5).ToIntDeg(); got != -23 {
		t.Errorf("-45 * 0.5 = %d, want -23", got)
	}
}

func TestFromVector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y float64
		deg  int
	}{
		{0, 1, 0},
		{1, 0, 90},
		{0, -1, -180},
		{-1, 0, -90},
		{1, 1, 45},
		{-2, -2, -135},
		{0, 0, 0},
	}
	for _, tc := range tests {
		if got := FromVector(tc.x, tc.y).ToIntDeg(); got != tc.deg {
			t.Errorf("FromVector(%v, %v) = %d, want %d", tc.x, tc.y, got, tc.deg)
		}
	}
}

func TestDirection(t *testing.T) {
	t.Parallel()

	from := orb.Point{1, 1}
	if got := Direction(from, orb.Point{1, 3}); !got.Equal(Deg0) {
		t.Errorf("north segment direction = %v", got)
	}
	if got := Direction(from, orb.Point{3, 1}); !got.Equal(Deg90) {
		t.Errorf("east segment direction = %v", got)
	}
	if got := Direction(from, orb.Point{0, 0}); got.ToIntDeg() != -135 {
		t.Errorf("southwest segment direction = %v", got)
	}
}

func TestIsCloseTo(t *testing.T) {
	t.Parallel()

	eps := FromDeg(10)
	if !FromDeg(7).IsCloseTo(Deg0, eps) {
		t.Error("7 deg should be within 10 of 0")
	}
	if FromDeg(11).IsCloseTo(Deg0, eps) {
		t.Error("11 deg should not be within 10 of 0")
	}
	if !FromDeg(-95).IsCloseTo(Deg270, eps) {
		t.Error("-95 deg should be within 10 of -90")
	}
	// Opposite headings never match, whatever the sine says.
	if FromDeg(-175).IsCloseTo(Deg0, eps) {
		t.Error("-175 deg should not be close to 0")
	}
}

func TestAt(t *testing.T) {
	t.Parallel()

	origin := orb.Point{0, 0}
	p := Deg0.At(origin, 2)
	if p.X() != 0 || p.Y() != 2 {
		t.Errorf("north from origin = %v, want (0, 2)", p)
	}
	p = Deg90.At(orb.Point{1, 1}, 3)
	if p.X() != 4 || p.Y() != 1 {
		t.Errorf("east from (1,1) = %v, want (4, 1)", p)
	}
	p = FromDeg(45).At(origin, math.Sqrt2)
	if !scalar.EqualWithinAbs(p.X(), 1, 1e-12) || !scalar.EqualWithinAbs(p.Y(), 1, 1e-12) {
		t.Errorf("45 deg at sqrt(2) = %v, want (1, 1)", p)
	}
}

func TestToRadRange(t *testing.T) {
	t.Parallel()

	for deg := -180; deg < 180; deg += 5 {
		rad := FromDeg(float64(deg)).ToRad()
		if rad < -math.Pi || rad >= math.Pi {
			t.Errorf("ToRad(%d deg) = %v out of [-pi, pi)", deg, rad)
		}
	}
	if got := Deg180.ToRad(); got != -math.Pi {
		t.Errorf("south ToRad = %v, want -pi", got)
	}
}

func TestNormRadNormDeg(t *testing.T) {
	t.Parallel()

	if got := NormDeg(180); got != -180 {
		t.Errorf("NormDeg(180) = %v, want -180", got)
	}
	if got := NormDeg(-190); got != 170 {
		t.Errorf("NormDeg(-190) = %v, want 170", got)
	}
	if got := NormDeg(540); got != -180 {
		t.Errorf("NormDeg(540) = %v, want -180", got)
	}
	if got := NormRad(3 * math.Pi); got < -math.Pi || got >= math.Pi || !scalar.EqualWithinAbs(math.Abs(got), math.Pi, 1e-9) {
		t.Errorf("NormRad(3pi) = %v, want half turn in [-pi, pi)", got)
	}
	if got := NormRad(-math.Pi / 2); got != -math.Pi/2 {
		t.Errorf("NormRad(-pi/2) = %v, want unchanged", got)
	}
}
