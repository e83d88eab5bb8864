/*Package prep builds preparation files, one tab-separated table per
  (run, project, lane), from a sample sheet and a demultiplexed run.

  The steps are:

    Group     partition sample-sheet rows by (run, project, lane), dropping
              samples without reads in the run;
    Merge     left-join the lane's read counts onto the group, keyed by
              well description;
    Finalize  strip the study id from sample_project and mirror it into
              center_project_name;
    Write     serialize each table to <out>/<run>.<project>.<lane>.tsv.

  FormatRun runs all of them for one run directory.  Every table is built
  before the first file is written, so a bad report or a non-unique join key
  leaves the output directory untouched.
*/
package prep
