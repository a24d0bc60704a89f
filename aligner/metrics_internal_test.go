// SPDX-License-Identifier: MIT

package aligner

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairalign/costtable"
)

func TestAlign_Metrics(t *testing.T) {
	ok := alignTotal.WithLabelValues("sequential", "ok")
	failed := alignTotal.WithLabelValues("sequential", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)
	cellsBefore := testutil.ToFloat64(cellsFilled)

	a, err := New(costtable.Penalties{Mismatch: 1, Gap: 1})
	require.NoError(t, err)
	_, err = a.Align(context.Background(), []byte("ACG"), []byte("AG"))
	require.NoError(t, err)
	_, err = a.Align(context.Background(), []byte("A_"), []byte("AG"))
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
	assert.Equal(t, cellsBefore+12, testutil.ToFloat64(cellsFilled), "4x3 table")
}
