// ABOUTME: Seeded train/test split
// ABOUTME: Permutes examples with a PCG source and slices off the test fraction
package dataset

import (
	"math"
	"math/rand/v2"
)

// Split shuffles examples with seed and returns disjoint train and test
// subsets. The test subset holds ceil(testFraction*n) examples.
func Split(examples []Example, testFraction float64, seed uint64) (train, test []Example) {
	n := len(examples)
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest > n {
		nTest = n
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	test = make([]Example, 0, nTest)
	train = make([]Example, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, examples[idx])
		} else {
			train = append(train, examples[idx])
		}
	}
	return train, test
}
