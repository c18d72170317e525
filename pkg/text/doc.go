/*
Package text holds the rewrite rules that wrap circular TypeORM types in Relation<T>.

	+-----------------+      +-----------------+
	|  forward-ref    |      |  many-to-one    |
	|  param matcher  |      |  prop matcher   |
	+--------+--------+      +--------+--------+
	         |                        |
	         +-----------+------------+
	                     |
	            +--------+--------+
	            | relation import |
	            +-----------------+

Matching is textual and conservative: only bare identifiers are wrapped, so a
second pass over rewritten contents never matches again.
*/
package text
