package options

import (
	"sort"

	"github.com/seenimoa/optionscope/pkg/models"
)

// MaxContractsPerSide bounds how many contracts survive per side (calls or
// puts) of a processed chain. The cap applies after filtering and ranking,
// so the result is the top contracts by volume among those that passed.
const MaxContractsPerSide = 20

// ProcessChain runs one side of a chain through the full pipeline: filter,
// rank by volume descending, cap at MaxContractsPerSide, then enrich. An
// empty input yields an empty (non-nil) result. The input slice is never
// mutated; ranking is stable, so equal-volume contracts keep the provider's
// strike order.
func ProcessChain(contracts []models.OptionContract, cfg FilterConfig) []EnrichedOption {
	kept := make([]models.OptionContract, 0, len(contracts))
	for _, c := range contracts {
		if Include(c, cfg) {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Volume > kept[j].Volume
	})

	if len(kept) > MaxContractsPerSide {
		kept = kept[:MaxContractsPerSide]
	}

	out := make([]EnrichedOption, 0, len(kept))
	for _, c := range kept {
		e := Enrich(c)
		if !cfg.IncludeGreeks {
			e.Delta = nil
		}
		out = append(out, e)
	}
	return out
}
