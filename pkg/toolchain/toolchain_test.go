package toolchain

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found in PATH", name)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "objdump", cfg.Dumper)
	assert.Equal(t, "objcopy", cfg.Remover)
	assert.Equal(t, "ld", cfg.Linker)
}

func TestDumpReturnsStdout(t *testing.T) {
	trueCmd := requireTool(t, "true")

	cfg := Config{Dumper: trueCmd}
	out, err := cfg.Dump([]string{"/dev/null"})

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDumpFailurePropagatesAsError(t *testing.T) {
	falseCmd := requireTool(t, "false")

	cfg := Config{Dumper: falseCmd}
	_, err := cfg.Dump([]string{"anything"})

	assert.Error(t, err)
}

func TestRemoveNoopWhenNothingToRemove(t *testing.T) {
	cfg := Config{Remover: "this-binary-does-not-exist"}
	err := cfg.Remove("main.o", nil)
	assert.NoError(t, err)
}

func TestRemoveFailurePropagatesAsError(t *testing.T) {
	falseCmd := requireTool(t, "false")

	cfg := Config{Remover: falseCmd}
	err := cfg.Remove("main.o", []string{".text$dead"})

	assert.Error(t, err)
}

func TestLinkFailurePropagatesAsError(t *testing.T) {
	falseCmd := requireTool(t, "false")

	cfg := Config{Linker: falseCmd}
	err := cfg.Link([]string{"main.o"})

	assert.Error(t, err)
}

func TestAvailable(t *testing.T) {
	trueCmd := requireTool(t, "true")

	assert.True(t, Available(trueCmd))
	assert.False(t, Available("this-binary-does-not-exist"))
}
