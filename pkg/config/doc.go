// Package config loads and validates swcfix settings.
//
//	            +-------------+
//	            |   Config    |
//	            | (defaults)  |
//	            +------+------+
//	                   |
//	     +-------------+-------------+
//	     |             |             |
//	+----+----+   +----+----+   +----+----+
//	|   HCL   |   |  YAML   |   |  JSON   |
//	| Parser  |   | Parser  |   | Parser  |
//	+---------+   +---------+   +---------+
//
// 🎯 Purpose:
//   - Provides the built-in defaults (.ts, typeorm, 10 workers, node_modules ignored)
//   - Overlays an optional .swcfix.{hcl,yaml,yml,json} file from the root
//   - Validates the merged result before any file is touched
//
// 🔄 Precedence:
//  1. Default()
//  2. Config file (explicit --config, or the first default name found)
//  3. Flags set on the command line (applied by cmd/swcfix)
//
// HCL files can read the environment:
//
//	orm_package = env["SWCFIX_ORM_PACKAGE"]
//	concurrency = 4
//	ignore      = ["**/node_modules/**", "**/dist/**"]
//
// 🔍 Example:
//
//	cfg, err := config.Resolve(ctx, "", root)
//	if err != nil {
//		return err
//	}
//	fmt.Println(cfg)
package config
