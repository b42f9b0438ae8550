// Package strip implements the "strip" subcommand: the driver that dumps a
// set of object files, runs the dependency analysis, removes every section
// that does not survive, and re-invokes the linker.
package strip

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/objstrip/deadstrip/pkg/deadstrip"
	"github.com/objstrip/deadstrip/pkg/dump"
	"github.com/objstrip/deadstrip/pkg/toolchain"
)

var (
	seeds       []string
	linkerPath  string
	output      string
	dumpCmdLn   bool
	dumpUsed    bool
	dumpUnused  bool
	dumpMap     bool
	dumpMapYAML bool
	noRemove    bool
)

// Cmd is the "strip" subcommand: strip <object-file>...
var Cmd = &cobra.Command{
	Use:   "strip <object-file>...",
	Short: "Remove sections unreachable from a seed symbol, then relink",
	Long: `strip dumps the relocation and section tables of the given object
files, builds a section dependency graph rooted at a set of seed symbols
(main by default), removes every section the seeds cannot reach, and
re-invokes the linker on the trimmed files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringArrayVar(&seeds, "save", nil, "additional seed symbol to keep reachable (repeatable)")
	Cmd.Flags().StringVar(&linkerPath, "linker", "", "override the configured linker executable")
	Cmd.Flags().StringVarP(&output, "output", "o", "a.out", "linker output path")
	Cmd.Flags().BoolVar(&dumpCmdLn, "dcmd", false, "print the command lines invoked")
	Cmd.Flags().BoolVar(&dumpUsed, "duse", false, "print the surviving sections per file")
	Cmd.Flags().BoolVar(&dumpUnused, "ddis", false, "print the discarded sections per file")
	Cmd.Flags().BoolVar(&dumpMap, "dmap", false, "print the full section dependency map")
	Cmd.Flags().BoolVar(&dumpMapYAML, "dmap-yaml", false, "print the dependency map as YAML instead of tagged text")
	Cmd.Flags().BoolVar(&noRemove, "dnrm", false, "skip section removal, but still link")
}

func config() toolchain.Config {
	cfg := toolchain.Config{
		Dumper:  viper.GetString("dumper"),
		Remover: viper.GetString("remover"),
		Linker:  viper.GetString("linker"),
	}

	if cfg.Dumper == "" {
		cfg.Dumper = toolchain.DefaultConfig().Dumper
	}
	if cfg.Remover == "" {
		cfg.Remover = toolchain.DefaultConfig().Remover
	}
	if cfg.Linker == "" {
		cfg.Linker = toolchain.DefaultConfig().Linker
	}
	if linkerPath != "" {
		cfg.Linker = linkerPath
	}

	return cfg
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config()

	if dumpCmdLn {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %v %v\n", cfg.Dumper, toolchain.DumperArgs, args)
	}

	raw, err := cfg.Dump(args)
	if err != nil {
		return err
	}

	objs := make([]*deadstrip.ObjectFile, len(args))
	for i, path := range args {
		objs[i] = deadstrip.NewObjectFile(path)
	}

	analysis := deadstrip.NewAnalysis()
	collectReader := deadstrip.NewDumpReader(bytes.NewReader(raw))
	for _, obj := range objs {
		analysis.Collect(obj, collectReader)
	}

	if err := analysis.Compute(objs, bytes.NewReader(raw)); err != nil {
		return err
	}

	analysis.ColorizeSeed("main", deadstrip.ColorLive)
	for _, s := range seeds {
		analysis.ColorizeSeed(s, deadstrip.ColorLive)
	}

	if !noRemove {
		for _, obj := range objs {
			unused := analysis.Unused(obj)
			if dumpCmdLn && len(unused) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s -R %v\n", cfg.Remover, obj.Path, unused)
			}
			if err := cfg.Remove(obj.Path, unused); err != nil {
				return err
			}
		}
	}

	linkArgs := append(append([]string{}, args...), "-o", output)
	if dumpCmdLn {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", cfg.Linker, linkArgs)
	}
	if err := cfg.Link(linkArgs); err != nil {
		return err
	}

	if dumpUsed {
		dump.WriteUsed(cmd.OutOrStdout(), toDumpFiles(analysis, objs, true))
	}
	if dumpUnused {
		dump.WriteUnused(cmd.OutOrStdout(), toDumpFiles(analysis, objs, false))
	}
	if dumpMap {
		dump.WriteMap(cmd.OutOrStdout(), toMapFiles(analysis, objs))
	}
	if dumpMapYAML {
		if err := dump.WriteMapYAML(cmd.OutOrStdout(), toMapFiles(analysis, objs)); err != nil {
			return err
		}
	}

	return nil
}

func toDumpFiles(a *deadstrip.Analysis, objs []*deadstrip.ObjectFile, used bool) []dump.File {
	out := make([]dump.File, len(objs))
	for i, obj := range objs {
		out[i] = dump.File{Path: obj.Path}
		if used {
			out[i].Sections = a.Used(obj)
		} else {
			out[i].Sections = a.Unused(obj)
		}
	}
	return out
}

func toMapFiles(a *deadstrip.Analysis, objs []*deadstrip.ObjectFile) []dump.MapFile {
	out := make([]dump.MapFile, len(objs))
	for i, obj := range objs {
		sections := a.Sections(obj)
		entries := make([]dump.MapEntry, len(sections))
		for j, s := range sections {
			entries[j] = dump.MapEntry{Name: s.Name, Color: s.Color, Edges: s.Edges}
		}
		out[i] = dump.MapFile{Path: obj.Path, Sections: entries}
	}
	return out
}
