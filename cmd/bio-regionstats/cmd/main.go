package cmd

import (
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/regionstats/genome"
	"github.com/grailbio/regionstats/interval"
	"github.com/grailbio/regionstats/stats"
	"github.com/grailbio/regionstats/tss"
	"v.io/x/lib/cmdline"
)

const pathHelp = `path is a BED file (optionally gzip-compressed) or a directory.  For a
directory, every *.bed* file in it is processed in sorted order, and files
that fail are logged and skipped.  Output is one value per line unless
-label is given.`

// batchFlags are accepted by every command that takes a BED path.
type batchFlags struct {
	parallelism *int
	label       *bool
	summary     *bool
}

func addBatchFlags(cmd *cmdline.Command, summary bool) batchFlags {
	f := batchFlags{
		parallelism: cmd.Flags.Int("parallelism", 1, "Maximum number of BED files processed at once in directory mode"),
		label:       cmd.Flags.Bool("label", false, "In directory mode, print a '# <path>' line before each file's output"),
	}
	if summary {
		f.summary = cmd.Flags.Bool("summary", false, "Print n/min/max/mean/median instead of one value per line")
	}
	return f
}

func (f batchFlags) batchOpts() batchOpts {
	return batchOpts{parallelism: *f.parallelism, label: *f.label}
}

func (f batchFlags) outputOpts() outputOpts {
	if f.summary == nil {
		return outputOpts{}
	}
	return outputOpts{summary: *f.summary}
}

func newCmdWidths() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "widths",
		Short:    "Print the width of every region",
		Long:     pathHelp,
		ArgsName: "path",
	}
	flags := addBatchFlags(cmd, true)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("widths takes one path argument, but got %v", argv)
		}
		return runBatch(argv[0], flags.batchOpts(), env.Stdout, func(path string, w io.Writer) error {
			return widths(path, w, flags.outputOpts())
		})
	})
	return cmd
}

func newCmdNeighborDistances() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "nd",
		Short:    "Print the distance between consecutive regions on each chromosome",
		Long:     "Regions are sorted by start before distances are computed.  Overlapping neighbors give negative distances.\n\n" + pathHelp,
		ArgsName: "path",
	}
	flags := addBatchFlags(cmd, true)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("nd takes one path argument, but got %v", argv)
		}
		return runBatch(argv[0], flags.batchOpts(), env.Stdout, func(path string, w io.Writer) error {
			return neighborDistances(path, w, flags.outputOpts())
		})
	})
	return cmd
}

func loadGenome(env *cmdline.Env, path string) (*genome.Assembly, error) {
	if path == "" {
		return nil, env.UsageErrorf("-genome is required")
	}
	log.Printf("loading genome %s", path)
	return genome.NewFromPath(path, genome.DefaultOpts)
}

func newCmdGC() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "gc",
		Short:    "Print the GC content of every region",
		Long:     pathHelp,
		ArgsName: "path",
	}
	flags := addBatchFlags(cmd, true)
	genomePath := cmd.Flags.String("genome", "", "Reference FASTA path (required)")
	ignoreUnknown := cmd.Flags.Bool("ignore-unknown-chroms", false, "Skip regions that can't be found in the genome instead of failing")
	mean := cmd.Flags.Bool("mean", false, "Print only the mean GC content of each file")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("gc takes one path argument, but got %v", argv)
		}
		g, err := loadGenome(env, *genomePath)
		if err != nil {
			return err
		}
		opts := gcOpts{
			outputOpts: flags.outputOpts(),
			GCOpts:     stats.GCOpts{IgnoreUnknownChroms: *ignoreUnknown, Parallelism: 1},
			mean:       *mean,
		}
		return runBatch(argv[0], flags.batchOpts(), env.Stdout, func(path string, w io.Writer) error {
			return gcContent(path, g, w, opts)
		})
	})
	return cmd
}

func newCmdDinucleotides() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "dinucl",
		Short:    "Print dinucleotide counts over all regions",
		Long:     "Output is one 'XY<TAB>count' line per dinucleotide, AA through TT.\n\n" + pathHelp,
		ArgsName: "path",
	}
	flags := addBatchFlags(cmd, false)
	genomePath := cmd.Flags.String("genome", "", "Reference FASTA path (required)")
	freq := cmd.Flags.Bool("freq", false, "Print frequencies instead of raw counts")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("dinucl takes one path argument, but got %v", argv)
		}
		g, err := loadGenome(env, *genomePath)
		if err != nil {
			return err
		}
		return runBatch(argv[0], flags.batchOpts(), env.Stdout, func(path string, w io.Writer) error {
			return dinucleotides(path, g, w, *freq)
		})
	})
	return cmd
}

func newCmdTSSDistances() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "tssdist",
		Short:    "Print the distance from every region to its nearest overlapping TSS",
		Long:     pathHelp,
		ArgsName: "path",
	}
	flags := addBatchFlags(cmd, true)
	tssPath := cmd.Flags.String("tss", "", "TSS annotation BED path (required)")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("tssdist takes one path argument, but got %v", argv)
		}
		if *tssPath == "" {
			return env.UsageErrorf("-tss is required")
		}
		idx, err := tss.NewIndexFromPath(*tssPath, interval.ParseOpts{SkipHeaders: true})
		if err != nil {
			return err
		}
		log.Printf("%s: indexed %d TSS region(s)", *tssPath, idx.Len())
		return runBatch(argv[0], flags.batchOpts(), env.Stdout, func(path string, w io.Writer) error {
			return tssDistances(path, idx, w, flags.outputOpts())
		})
	})
	return cmd
}

func newCmdFaidx() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "faidx",
		Short:    "Write a samtools-compatible .fai index next to a FASTA file",
		ArgsName: "fastapath",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("faidx takes one FASTA path, but got %v", argv)
		}
		return faidx(argv[0])
	})
	return cmd
}

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-regionstats",
		Short:    "Descriptive statistics over genomic region files",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdWidths(),
			newCmdNeighborDistances(),
			newCmdGC(),
			newCmdDinucleotides(),
			newCmdTSSDistances(),
			newCmdFaidx(),
		},
	}
}

func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
