package streetmix

import (
	"errors"
	"reflect"
	"testing"
)

// scatterPool is the standard five-entry test pool: four regular objects
// and one narrow object that must never open a sequence.
func scatterPool() []ObjectDescriptor {
	return []ObjectDescriptor{
		{ID: "tree", Width: 2},
		{ID: "big_tree", Width: 3},
		{ID: "bush", Width: 2},
		{ID: "bench", Width: 2},
		{ID: "flamingo", Width: 1, DisallowFirst: true},
	}
}

func scatterParams(seed uint32) PackParams {
	return PackParams{
		TargetWidth:  20,
		Seed:         seed,
		MinSpacing:   1,
		MaxSpacing:   3,
		MaxPoolWidth: 3,
		Padding:      2,
	}
}

func TestPack_Deterministic(t *testing.T) {
	for seed := uint32(0); seed < 20; seed++ {
		a, err := Pack(scatterPool(), scatterParams(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		b, err := Pack(scatterPool(), scatterParams(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: repeated Pack calls differ:\n%+v\n%+v", seed, a, b)
		}
	}
}

func TestPack_Coverage(t *testing.T) {
	for seed := uint32(0); seed < 100; seed++ {
		p := scatterParams(seed)
		result, err := Pack(scatterPool(), p)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(result.Objects) == 0 {
			t.Fatalf("seed %d: no placements", seed)
		}

		need := p.TargetWidth - 2*p.Padding

		// Every non-first placement exists because the running width was
		// still short of the required coverage when its iteration began.
		for i := 1; i < len(result.Objects); i++ {
			if result.Objects[i].Left >= need {
				t.Errorf("seed %d: placement %d at %v ft, past coverage %v", seed, i, result.Objects[i].Left, need)
			}
		}

		// After the final span (trailing spacing at most MaxSpacing), the
		// running width reached coverage.
		last := result.Objects[len(result.Objects)-1]
		footprint := last.Left + last.Width
		if footprint+p.MaxSpacing < need {
			t.Errorf("seed %d: footprint %v + max spacing short of coverage %v", seed, footprint, need)
		}
	}
}

func TestPack_NoImmediateRepeat(t *testing.T) {
	for seed := uint32(0); seed < 100; seed++ {
		result, err := Pack(scatterPool(), scatterParams(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i := 1; i < len(result.Objects); i++ {
			if result.Objects[i].ID == result.Objects[i-1].ID {
				t.Errorf("seed %d: %q repeats at positions %d and %d", seed, result.Objects[i].ID, i-1, i)
			}
		}
	}
}

func TestPack_DisallowFirstNeverFirst(t *testing.T) {
	for seed := uint32(0); seed < 200; seed++ {
		result, err := Pack(scatterPool(), scatterParams(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if result.Objects[0].DisallowFirst {
			t.Errorf("seed %d: sequence opens with %q (disallowed first)", seed, result.Objects[0].ID)
		}
	}
}

func TestPack_MonotonicLefts(t *testing.T) {
	for seed := uint32(0); seed < 100; seed++ {
		result, err := Pack(scatterPool(), scatterParams(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if result.Objects[0].Left != 0 {
			t.Errorf("seed %d: first Left = %v, want 0", seed, result.Objects[0].Left)
		}
		for i := 1; i < len(result.Objects); i++ {
			if result.Objects[i].Left < result.Objects[i-1].Left {
				t.Errorf("seed %d: Left decreases at %d: %v -> %v",
					seed, i, result.Objects[i-1].Left, result.Objects[i].Left)
			}
		}
	}
}

func TestPack_ConcreteScenario(t *testing.T) {
	result, err := Pack(scatterPool(), scatterParams(99))
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Objects) == 0 {
		t.Fatal("no placements")
	}
	if result.Objects[0].DisallowFirst {
		t.Errorf("sequence opens with %q", result.Objects[0].ID)
	}

	// Coverage is 20 - 2*2 = 16 ft of allocated span; the trailing spacing
	// (at most 3 ft) is trimmed from the reported footprint.
	last := result.Objects[len(result.Objects)-1]
	footprint := last.Left + last.Width
	if footprint < 16-3 {
		t.Errorf("footprint %v ft, want at least 13", footprint)
	}
}

func TestPack_SingleObjectCentering(t *testing.T) {
	pool := []ObjectDescriptor{{ID: "big_tree", Width: 6}}
	result, err := Pack(pool, PackParams{
		TargetWidth:  6,
		Seed:         5,
		MinSpacing:   1,
		MaxSpacing:   3,
		MaxPoolWidth: 6,
		Padding:      1.5,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Coverage is 6 - 2*1.5 = 3 ft; the first span (at least 7 ft) always
	// reaches it, so exactly one object is placed.
	if len(result.Objects) != 1 {
		t.Fatalf("placements = %d, want 1", len(result.Objects))
	}
	// Width equals MaxPoolWidth, so the edge correction is zero and the
	// centering offset is exact.
	if want := (6.0 - 6.0) / 2; result.StartLeft != want {
		t.Errorf("StartLeft = %v, want %v", result.StartLeft, want)
	}
}

func TestPack_SingleObjectCentering_NarrowerThanPoolMax(t *testing.T) {
	pool := []ObjectDescriptor{{ID: "bush", Width: 4}}
	result, err := Pack(pool, PackParams{
		TargetWidth:  6,
		Seed:         5,
		MinSpacing:   0,
		MaxSpacing:   0,
		MaxPoolWidth: 6,
		Padding:      1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Objects) != 1 {
		t.Fatalf("placements = %d, want 1", len(result.Objects))
	}
	// (6-4)/2 centering plus (6-4)/2 edge correction.
	if want := 1.0 + 1.0; result.StartLeft != want {
		t.Errorf("StartLeft = %v, want %v", result.StartLeft, want)
	}
}

func TestPack_PoolOfOne_Repeats(t *testing.T) {
	// DisallowFirst is ignored below four entries; the only object still
	// opens the sequence.
	pool := []ObjectDescriptor{{ID: "bush", Width: 2, DisallowFirst: true}}
	result, err := Pack(pool, PackParams{
		TargetWidth:  30,
		Seed:         11,
		MinSpacing:   1,
		MaxSpacing:   3,
		MaxPoolWidth: 2,
		Padding:      1.5,
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, obj := range result.Objects {
		if obj.ID != "bush" {
			t.Fatalf("placement %d: ID = %q, want bush", i, obj.ID)
		}
	}

	// Coverage is 27 ft; each iteration allocates between 3 and 5 ft.
	n := len(result.Objects)
	if n < 6 || n > 9 {
		t.Errorf("placements = %d, want 6..9 for 27 ft at 3..5 ft each", n)
	}
}

func TestPack_ZeroSpacing_BackToBack(t *testing.T) {
	result, err := Pack(scatterPool(), PackParams{
		TargetWidth:  20,
		Seed:         3,
		MinSpacing:   0,
		MaxSpacing:   0,
		MaxPoolWidth: 3,
		Padding:      2,
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(result.Objects); i++ {
		prev := result.Objects[i-1]
		if got, want := result.Objects[i].Left, prev.Left+prev.Width; got != want {
			t.Errorf("placement %d: Left = %v, want %v (back-to-back)", i, got, want)
		}
	}
}

func TestPack_TargetSmallerThanObject(t *testing.T) {
	pool := []ObjectDescriptor{{ID: "big_tree", Width: 10}}
	result, err := Pack(pool, PackParams{
		TargetWidth:  0.5,
		Seed:         0,
		MinSpacing:   1,
		MaxSpacing:   3,
		MaxPoolWidth: 10,
		Padding:      1.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Objects) != 1 {
		t.Fatalf("placements = %d, want 1", len(result.Objects))
	}
}

func TestPack_PoolNotMutated(t *testing.T) {
	pool := scatterPool()
	want := scatterPool()
	if _, err := Pack(pool, scatterParams(8)); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pool, want) {
		t.Errorf("pool mutated by Pack:\n%+v\nwant\n%+v", pool, want)
	}
}

func TestPack_AllDisallowedFirst_StillTerminates(t *testing.T) {
	// Jointly unsatisfiable first-object constraint: the bounded rejection
	// loop must give up and place something anyway.
	pool := []ObjectDescriptor{
		{ID: "a", Width: 2, DisallowFirst: true},
		{ID: "b", Width: 2, DisallowFirst: true},
		{ID: "c", Width: 2, DisallowFirst: true},
		{ID: "d", Width: 2, DisallowFirst: true},
	}
	result, err := Pack(pool, PackParams{
		TargetWidth:  12,
		Seed:         1,
		MinSpacing:   1,
		MaxSpacing:   2,
		MaxPoolWidth: 2,
		Padding:      1.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Objects) == 0 {
		t.Fatal("no placements")
	}
}

func TestPack_Errors(t *testing.T) {
	valid := scatterParams(0)

	if _, err := Pack(nil, valid); !errors.Is(err, ErrInvalidPool) {
		t.Errorf("empty pool: err = %v, want ErrInvalidPool", err)
	}

	bad := scatterPool()
	bad[2].Width = 0
	if _, err := Pack(bad, valid); !errors.Is(err, ErrInvalidPool) {
		t.Errorf("zero width: err = %v, want ErrInvalidPool", err)
	}

	p := valid
	p.MinSpacing, p.MaxSpacing = 3, 1
	if _, err := Pack(scatterPool(), p); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("max < min: err = %v, want ErrInvalidSpacing", err)
	}

	p = valid
	p.MinSpacing = -1
	if _, err := Pack(scatterPool(), p); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("negative min: err = %v, want ErrInvalidSpacing", err)
	}

	p = valid
	p.TargetWidth = 0
	if _, err := Pack(scatterPool(), p); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("zero target: err = %v, want ErrInvalidSpacing", err)
	}

	p = valid
	p.SpacingAdjustment = -0.5
	if _, err := Pack(scatterPool(), p); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("negative adjustment: err = %v, want ErrInvalidSpacing", err)
	}
}
