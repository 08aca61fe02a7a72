package selector

// Fold lists the training and held-out sequence indices of one split.
type Fold struct {
	Train []int
	Test  []int
}

// KFold partitions n sequence indices into k folds without shuffling.
// The held-out blocks are contiguous and in original order: the first
// n mod k folds hold floor(n/k)+1 indices, the rest hold floor(n/k).
// Every index appears in exactly one held-out block.
func KFold(n, k int) []Fold {

	if k < 2 || n < k {
		return nil
	}

	folds := make([]Fold, 0, k)
	size := n / k
	extra := n % k

	start := 0
	for i := 0; i < k; i++ {
		stop := start + size
		if i < extra {
			stop++
		}

		test := make([]int, 0, stop-start)
		train := make([]int, 0, n-(stop-start))
		for j := 0; j < n; j++ {
			if j >= start && j < stop {
				test = append(test, j)
			} else {
				train = append(train, j)
			}
		}
		folds = append(folds, Fold{Train: train, Test: test})
		start = stop
	}
	return folds
}
