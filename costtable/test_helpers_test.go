// SPDX-License-Identifier: MIT

package costtable_test

import "math/rand"

// randomSeq returns a sequence of length n over alphabet using r.
func randomSeq(r *rand.Rand, n int, alphabet string) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = alphabet[r.Intn(len(alphabet))]
	}
	return s
}

// penaltyGrid covers zero, equal and skewed penalty schemes.
var penaltyGrid = []struct{ mismatch, gap int }{
	{0, 0}, {1, 1}, {1, 2}, {3, 2}, {2, 1}, {5, 1}, {0, 3},
}
