package analysis

// tieThreshold is the overall-score margin below which two files are
// considered equivalent. LLM scoring is noisy at sub-point resolution.
const tieThreshold = 0.5

// Winner values for a Comparison.
const (
	WinnerA   = "A"
	WinnerB   = "B"
	WinnerTie = "TIE"
)

// Compare derives per-dimension deltas and a winner from two results. Deltas
// are B minus A. A dimension missing from both results is omitted; missing
// from one side, it is treated as zero.
func Compare(a, b *Result) *Comparison {
	deltas := make(map[string]float64)
	for _, dim := range Dimensions {
		av, aok := a.Dimensions[dim]
		bv, bok := b.Dimensions[dim]
		if !aok && !bok {
			continue
		}
		deltas[dim] = bv - av
	}

	overall := b.Score - a.Score
	winner := WinnerTie
	switch {
	case overall >= tieThreshold:
		winner = WinnerB
	case overall <= -tieThreshold:
		winner = WinnerA
	}

	return &Comparison{
		A:       a,
		B:       b,
		Deltas:  deltas,
		Overall: overall,
		Winner:  winner,
	}
}
