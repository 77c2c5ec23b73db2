// Package report renders accumulated [profiler] statistics as text.
//
// [Rows] flattens a [profiler.Snapshot] into depth-annotated rows with the
// derived values (global/local/self percentages, per-call mean and deviation,
// call frequency) computed against the snapshot's measurement window. Scopes
// with zero completed calls are omitted together with their subtrees, since
// every percentage under them is undefined.
//
// [Write] renders the rows as an indented table:
//
//	scope       global    local     self       mean        std  ...
//	frame       94.12%   94.12%    3.04%   10.40ms     0.52ms  ...
//	  physics    2.86%    3.04%   66.15%    3.16ms     0.11ms  ...
//	  render    91.14%   96.84%  100.00%   10.07ms     0.48ms  ...
//
// [Encode] additionally supports YAML and JSON output of the same rows. Use
// [Config] to drive format and destination from CLI flags.
//
// [profiler]: go.jacobcolvin.com/scopeprof/profiler
package report
