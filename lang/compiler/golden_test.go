package compiler_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stakvm/stak/internal/filetest"
	"github.com/stakvm/stak/lang/compiler"
	"github.com/stretchr/testify/require"
)

var testUpdateCompilerTests = flag.Bool("test.update-compiler-tests", false, "If set, replace expected compiler test results with actual results.")

// TestCompileGolden compiles every file in testdata/in and diffs one
// opcode-per-statement dump against testdata/out/<name>.want, using the
// source-dir/result-dir golden-file layout of internal/filetest.
func TestCompileGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".stak") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			stmts, err := compiler.Compile(string(src), false, fi.Name())
			require.NoError(t, err)

			var lines []string
			for _, ops := range stmts {
				words := make([]string, len(ops))
				for i, op := range ops {
					words[i] = op.String()
				}
				lines = append(lines, strings.Join(words, " "))
			}
			out := strings.Join(lines, "\n") + "\n"

			filetest.DiffOutput(t, fi, out, resultDir, testUpdateCompilerTests)
		})
	}
}
