package tidy_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lestrrat-go/tidy"
	"github.com/lestrrat-go/tidy/s11n"
	"github.com/stretchr/testify/require"
)

// TestLintGolden checks tidy-lint output against golden files.
//
// Every .html file in testdata/ that has a matching .lint file is parsed
// with the default configuration and written back out. To limit the run
// to some files:
//
//	TIDY_LINT_TEST_FILES=soup.html,table.html go test -run TestLintGolden
func TestLintGolden(t *testing.T) {
	only := map[string]struct{}{}
	if v := os.Getenv("TIDY_LINT_TEST_FILES"); v != "" {
		for _, f := range strings.Split(v, ",") {
			only[strings.TrimSpace(f)] = struct{}{}
		}
	}

	const dir = "testdata"
	files, err := os.ReadDir(dir)
	require.NoError(t, err, "os.ReadDir should succeed")

	var tested int
	for _, fi := range files {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".html") {
			continue
		}
		if len(only) > 0 {
			if _, ok := only[fi.Name()]; !ok {
				continue
			}
		}

		fn := filepath.Join(dir, fi.Name())
		goldenfn := strings.TrimSuffix(fn, ".html") + ".lint"
		if _, err := os.Stat(goldenfn); err != nil {
			t.Logf("%s does not exist, skipping lint test...", goldenfn)
			continue
		}

		t.Run(fi.Name(), func(t *testing.T) {
			golden, err := os.ReadFile(goldenfn)
			require.NoError(t, err, "os.ReadFile should succeed for golden file")
			input, err := os.ReadFile(fn)
			require.NoError(t, err, "os.ReadFile should succeed for input file")

			doc, err := tidy.Parse(context.Background(), input)
			require.NoError(t, err, "tidy.Parse should succeed for %s", fn)

			var output bytes.Buffer
			d := s11n.Dumper{}
			require.NoError(t, d.DumpDoc(&output, doc))

			actual := output.String()
			if actual != string(golden) {
				if err := os.WriteFile(fn+".lint.err", output.Bytes(), 0600); err == nil {
					t.Logf("Actual output saved to %s", fn+".lint.err")
				}
			}
			require.Equal(t, string(golden), actual, "output should match golden file for %s", fn)
		})
		tested++
	}
	if len(only) == 0 {
		require.NotZero(t, tested, "at least one golden file should be tested")
	}
}

