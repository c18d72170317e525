/*
Package operation applies the relation rewrite to a source tree.

	+-------------+      +-------------+      +-------------+
	|  Discover   | ---> |  errgroup   | ---> |  Processor  |
	| (doublestar)|      | (SetLimit)  |      | (one file)  |
	+-------------+      +-------------+      +------+------+
	                                                 |
	                                          +------+------+
	                                          | text.Engine |
	                                          +------+------+
	                                                 |
	                                          +------+------+
	                                          |  FileStore  |
	                                          | (atomic)    |
	                                          +-------------+

🎯 Purpose:
- Lists the candidate files below a root (extension filter, ignore globs)
- Fans the Processor out over them with a concurrency ceiling
- Reports one outcome per file: updated, skipped, would-update or failed
- Keeps watching the tree in watch mode

🔄 Flow:
 1. CheckRoot before anything is touched
 2. Discover files in walk order
 3. Submit one unit per file, at most Config.Concurrency in flight
 4. Each unit reads, rewrites, and writes back only if a rule fired
 5. Wait for every unit, then tally the Summary

⚡ Failure model:
A failed file never stops its siblings. Fix returns the full Summary along
with an error naming how many files failed. Cancelling the context stops new
units from starting; writes already in progress finish.

🔍 Example:

	summary, err := operation.Fix(ctx, operation.Options{
		Root:   "./src",
		Config: cfg,
	})
	if summary != nil {
		fmt.Println(summary.Updated, "files updated")
	}
*/
package operation
