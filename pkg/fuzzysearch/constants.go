package fuzzysearch

// scoreThreshold is the minimum raw fuzzy score a candidate must clear
// before it is emitted at all, per §4.10 ("if score > 10").
const scoreThreshold = 10

// pathBoost is the multiplicative priority boost path matches receive
// over heading matches with the same raw score.
const pathBoost = 1.3
