/*
bio-seqpro writes the sample preparation files of a demultiplexed sequencing
run: one tab-separated file per (project, lane), holding the run's sample
sheet rows for that project and lane.

	bio-seqpro [--pipeline=fastp-and-minimap2|atropos-and-bowtie2] [--verbose] run_dir sample_sheet output_dir

Samples whose FASTQ files hold no reads are left out.  For runs processed by
fastp-and-minimap2, the demultiplexer's read counts are added in column
raw_reads_r1r2, taken from Stats/Stats.json (bcl2fastq) or
Reports/Demultiplex_Stats.csv (bcl-convert).  Study ids are removed from
sample_project, which is copied to center_project_name.

With --verbose, "<study id>\t<absolute path>" is printed for every file
written.
*/
package main
