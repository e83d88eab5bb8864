package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/seqprep/prep"
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "bio-seqpro",
		Short:    "Write sample preparation files for a sequencing run",
		ArgsName: "run_dir sample_sheet output_dir",
		ArgsLong: `
run_dir is the demultiplexed run directory; its base name is the run id.
sample_sheet is the Illumina sample sheet of the run.
output_dir receives <run>.<project>.<lane>.tsv files and is created if needed.`,
		LookPath: false,
	}
	opts := prep.DefaultOpts
	cmd.Flags.StringVar(&opts.Pipeline, "pipeline", opts.Pipeline,
		fmt.Sprintf("Pipeline that processed the run, %q or %q", prep.FastpMinimap2, prep.AtroposBowtie2))
	cmd.Flags.BoolVar(&opts.Verbose, "verbose", false, "Print the study id and absolute path of every file written")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return env.UsageErrorf("bio-seqpro takes run_dir sample_sheet output_dir, but found %v", argv)
		}
		opts.RunDir, opts.SampleSheet, opts.OutputDir = argv[0], argv[1], argv[2]
		_, err := prep.FormatRun(context.Background(), opts, env.Stdout)
		return err
	})
	return cmd
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
