// Package toolchain adapts the deadstrip analysis engine to the external
// object-dumper, section-remover, and linker it drives. It owns process
// invocation only; it never interprets the dumper's output (that's
// pkg/deadstrip's job) or chooses which sections to remove (that's the
// driver's, based on the analysis result).
package toolchain

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/objstrip/deadstrip/pkg/utils"
)

// Config names the external tools invoked around the analysis engine.
type Config struct {
	Dumper  string // object dumper, e.g. "objdump"
	Remover string // section remover, e.g. "objcopy"
	Linker  string // linker, e.g. "ld"
}

// DefaultConfig returns the GNU binutils tool names the original tool
// hardcoded as its defaults.
func DefaultConfig() Config {
	return Config{
		Dumper:  "objdump",
		Remover: "objcopy",
		Linker:  "ld",
	}
}

// DumperArgs are the objdump flags that produce the section and relocation
// table text the Dump Parser expects: relocations (-r) and section headers
// (-h).
var DumperArgs = []string{"-r", "-h"}

// Dump invokes the configured object dumper over the given object files
// and returns its combined stdout.
func (c Config) Dump(objectFiles []string) ([]byte, error) {
	args := make([]string, 0, len(DumperArgs)+len(objectFiles))
	args = append(args, DumperArgs...)
	args = append(args, objectFiles...)

	cmd := exec.Command(c.Dumper, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, utils.MakeError(err, "running object dumper %q over %v", c.Dumper, objectFiles)
	}

	return out.Bytes(), nil
}

// Remove invokes the configured section remover to strip the given
// section names from path in place. An empty sections list is a no-op.
func (c Config) Remove(path string, sections []string) error {
	if len(sections) == 0 {
		return nil
	}

	args := make([]string, 0, len(sections)*2+1)
	for _, s := range sections {
		args = append(args, "-R", s)
	}
	args = append(args, path)

	cmd := exec.Command(c.Remover, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return utils.MakeError(err, "removing %d section(s) from %q", len(sections), path)
	}

	return nil
}

// Link invokes the configured linker with args verbatim (object files,
// "-o" and its value, and any pass-through flags the driver collected).
func (c Config) Link(args []string) error {
	cmd := exec.Command(c.Linker, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return utils.MakeError(err, "invoking linker %q", c.Linker)
	}

	return nil
}

// Available probes whether the named tool can be executed, the same
// "run it with --version" check the teacher toolchain drivers use to
// confirm an external tool is functional before relying on it.
func Available(path string) bool {
	cmd := exec.Command(path, "--version")
	return cmd.Run() == nil
}
