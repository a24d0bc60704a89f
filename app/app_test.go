// SPDX-License-Identifier: MIT

package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairalign/app"
	"github.com/katalvlaran/pairalign/report"
)

const genesAggregate = "dc3d16540bcd989c1b38fd02c8f5a6443ebfe845a2c7f2c0b93f9b2fc873e8a0" +
	"17660ba8913bc1186f289169f79197f8adbd334cd2586197254566fc9c76f4ff"

const genesInput = "3 2\n5\nAGGGCT\nAGGCA\nTTAGGC\nGATTACA\nCAT\n"

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := app.RunContext(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestPairs_Text(t *testing.T) {
	for _, workers := range []string{"1", "3", "7"} {
		code, out, errOut := run(t, genesInput, "pairs", "--timing=false", "--workers="+workers)
		require.Equal(t, app.ExitOK, code, errOut)
		assert.Equal(t, genesAggregate+"\n5 8 6 14 10 10 10 8 12 11 \n", out)
	}
}

func TestPairs_WavefrontAndLocalWorkers(t *testing.T) {
	code, out, errOut := run(t, genesInput, "pairs", "--timing=false",
		"--workers=2", "--local-workers=3", "--wavefront-threads=2")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, genesAggregate+"\n5 8 6 14 10 10 10 8 12 11 \n", out)
}

func TestPairs_Timing(t *testing.T) {
	code, out, errOut := run(t, genesInput, "pairs")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.True(t, strings.HasPrefix(out, "Time: "), out)
	assert.Contains(t, out, genesAggregate)
}

func TestPairs_JSON(t *testing.T) {
	code, out, errOut := run(t, genesInput, "pairs", "--format=json", "--timing=false")
	require.Equal(t, app.ExitOK, code, errOut)

	var rep report.PairsReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, genesAggregate, rep.Aggregate)
	assert.Len(t, rep.Pairs, 10)
	assert.Nil(t, rep.ElapsedUS)
}

func TestPairs_FASTAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.fa")
	fa := ">a\nAGGGCT\n>b\nAGGCA\n>c\nTTAGGC\n>d\nGATTACA\n>e\nCAT\n"
	require.NoError(t, os.WriteFile(path, []byte(fa), 0o600))

	code, out, errOut := run(t, "", "pairs", "--fasta", "--mismatch=3", "--gap=2", "--timing=false", path)
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, genesAggregate+"\n5 8 6 14 10 10 10 8 12 11 \n", out)
}

func TestPairs_EnvConfig(t *testing.T) {
	t.Setenv("PAIRALIGN_WORKERS", "0")
	code, _, errOut := run(t, genesInput, "pairs")
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, errOut, "workers")
}

func TestPairs_BadInput(t *testing.T) {
	code, out, errOut := run(t, "3 2 2 AC_ GT", "pairs")
	assert.Equal(t, app.ExitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "gap sentinel")

	code, _, errOut = run(t, "3 2 1 ACGT", "pairs")
	assert.Equal(t, app.ExitError, code)
	assert.Contains(t, errOut, "at least two sequences")
}

func TestAlign_Text(t *testing.T) {
	code, out, errOut := run(t, "3 2\nAGGGCT\nAGGCA\n", "align", "--timing=false", "--threads=3")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, "misMatchPenalty=3\n"+
		"gapPenalty=2\n"+
		"Minimum Penalty in aligning the genes = 5\n"+
		"The aligned genes are :\n"+
		"AGGGCT\n"+
		"A_GGCA\n", out)
}

func TestAlign_JSON(t *testing.T) {
	code, out, errOut := run(t, "1 2 AGGGCT AGGCA", "align", "--format=json", "--timing=false")
	require.Equal(t, app.ExitOK, code, errOut)

	var rep report.SingleReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 3, rep.Penalty)
	assert.Equal(t, "AGGGCT", rep.X)
	assert.Equal(t, "A_GGCA", rep.Y)
}

func TestAlign_Truncated(t *testing.T) {
	code, _, errOut := run(t, "1 2 AGGGCT", "align")
	assert.Equal(t, app.ExitError, code)
	assert.Contains(t, errOut, "truncated")
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := run(t, "", "pairs", "--no-such-flag")
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, errOut, "no-such-flag")

	code, _, _ = run(t, genesInput, "pairs", "--format=xml")
	assert.Equal(t, app.ExitUsage, code)

	code, _, _ = run(t, genesInput, "pairs", "--log-level=chatty")
	assert.Equal(t, app.ExitUsage, code)
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "", "version")
	require.Equal(t, app.ExitOK, code)
	assert.Equal(t, "pairalign version "+app.Version+"\n", out)
}

func TestMetricsEndpoint(t *testing.T) {
	code, out, errOut := run(t, genesInput, "pairs", "--timing=false", "--metrics-addr=127.0.0.1:0", "--log-level=info")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Contains(t, out, genesAggregate)
	assert.Contains(t, errOut, "serving metrics")
}
