package earley

// itemRef references an item of a chart.
type itemRef struct {
	col int
	id  int
}

// itemset holds the items currently being expanded during tree extraction.
type itemset map[itemRef]struct{}

var exists = struct{}{}

func (set itemset) add(ref itemRef) itemset {
	if set == nil {
		set = itemset{}
	}
	set[ref] = exists
	return set
}

func (set itemset) contains(ref itemRef) bool {
	if set == nil {
		return false
	}
	_, ok := set[ref]
	return ok
}

func (set itemset) delete(ref itemRef) {
	if set != nil {
		delete(set, ref)
	}
}
