package options

import (
	"testing"

	"github.com/seenimoa/optionscope/pkg/models"
)

func contractsWithVolumes(volumes ...int64) []models.OptionContract {
	out := make([]models.OptionContract, 0, len(volumes))
	for i, v := range volumes {
		out = append(out, models.OptionContract{
			Strike: float64(100 + 5*i),
			Volume: v,
			Ask:    1,
		})
	}
	return out
}

func TestProcessChain_FilterAndRank(t *testing.T) {
	contracts := contractsWithVolumes(50, 200, 10)

	got := ProcessChain(contracts, FilterConfig{MinVolume: 20})
	if len(got) != 2 {
		t.Fatalf("got %d contracts, want 2", len(got))
	}
	if got[0].Volume != 200 || got[1].Volume != 50 {
		t.Errorf("order: got [%d, %d], want [200, 50]", got[0].Volume, got[1].Volume)
	}
}

func TestProcessChain_Empty(t *testing.T) {
	got := ProcessChain(nil, FilterConfig{})
	if got == nil || len(got) != 0 {
		t.Errorf("empty chain should yield empty non-nil slice, got %v", got)
	}
}

func TestProcessChain_Cap(t *testing.T) {
	volumes := make([]int64, 35)
	for i := range volumes {
		volumes[i] = int64(i + 1)
	}

	got := ProcessChain(contractsWithVolumes(volumes...), FilterConfig{})
	if len(got) != MaxContractsPerSide {
		t.Fatalf("got %d contracts, want %d", len(got), MaxContractsPerSide)
	}
	// Top volume first, and the cap keeps the highest-volume contracts.
	if got[0].Volume != 35 || got[len(got)-1].Volume != 16 {
		t.Errorf("cap kept wrong contracts: first %d last %d", got[0].Volume, got[len(got)-1].Volume)
	}
}

func TestProcessChain_SortedDescending(t *testing.T) {
	got := ProcessChain(contractsWithVolumes(7, 300, 42, 300, 1), FilterConfig{})
	for i := 1; i < len(got); i++ {
		if got[i].Volume > got[i-1].Volume {
			t.Fatalf("not sorted descending at %d: %d > %d", i, got[i].Volume, got[i-1].Volume)
		}
	}
}

func TestProcessChain_StableTies(t *testing.T) {
	// Equal volumes keep the provider's strike order.
	contracts := []models.OptionContract{
		{Strike: 100, Volume: 50},
		{Strike: 105, Volume: 50},
		{Strike: 110, Volume: 50},
	}

	got := ProcessChain(contracts, FilterConfig{})
	if got[0].Strike != 100 || got[1].Strike != 105 || got[2].Strike != 110 {
		t.Errorf("tie order changed: %v %v %v", got[0].Strike, got[1].Strike, got[2].Strike)
	}
}

func TestProcessChain_AllPassFilter(t *testing.T) {
	contracts := contractsWithVolumes(10, 500, 90, 45, 120)
	cfg := FilterConfig{MinVolume: 40}

	for _, c := range ProcessChain(contracts, cfg) {
		if c.Volume < 40 {
			t.Errorf("contract with volume %d survived minVolume=40", c.Volume)
		}
	}
}

func TestProcessChain_StripsDelta(t *testing.T) {
	d := 0.5
	contracts := []models.OptionContract{{Strike: 100, Delta: &d}}

	with := ProcessChain(contracts, FilterConfig{IncludeGreeks: true})
	if with[0].Delta == nil {
		t.Error("delta should be present when greeks are included")
	}
	without := ProcessChain(contracts, FilterConfig{IncludeGreeks: false})
	if without[0].Delta != nil {
		t.Error("delta should be omitted when greeks are excluded")
	}
}
