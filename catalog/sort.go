package catalog

// RunSize is the length of the runs Sort orders with insertion sort before
// merging.
const RunSize = 16

// Sort orders items by Compare in place. Runs of RunSize items are insertion
// sorted, then merged bottom-up, doubling the run width on every pass and
// alternating between items and a scratch buffer of the same length. Merges
// prefer the left run on ties.
func Sort(items []Item) {
	n := len(items)
	if n < 2 {
		return
	}

	for lo := 0; lo < n; lo += RunSize {
		insertionSort(items[lo:min(lo+RunSize, n)])
	}
	if n <= RunSize {
		return
	}

	src, dst := items, make([]Item, n)
	for width := RunSize; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(dst[lo:hi], src[lo:mid], src[mid:hi])
		}
		src, dst = dst, src
	}

	// after an odd number of passes the sorted data lives in the scratch buffer
	if &src[0] != &items[0] {
		copy(items, src)
	}
}

func insertionSort(run []Item) {
	for j := 1; j < len(run); j++ {
		it := run[j]
		k := j
		for k > 0 && compareItems(run[k-1], it) > 0 {
			run[k] = run[k-1]
			k--
		}
		run[k] = it
	}
}

// merge writes the merge of the sorted slices left and right into dst, which
// must have len(left)+len(right) elements.
func merge(dst, left, right []Item) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if compareItems(left[i], right[j]) <= 0 {
			dst[k] = left[i]
			i++
		} else {
			dst[k] = right[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}
