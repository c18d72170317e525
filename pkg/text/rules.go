// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// RelationType is the TypeORM wrapper inserted around circular types
	RelationType = "Relation"

	// DefaultORMPackage is the module the Relation type is imported from
	DefaultORMPackage = "typeorm"

	RuleForwardRef     = "forward-ref-param"
	RuleManyToOne      = "many-to-one-property"
	RuleRelationImport = "relation-import"
)

// identifiers are kept bare on purpose: generics, unions and arrays never match
const (
	ident     = `[A-Za-z_$][\w$]*`
	modifiers = `(?:(?:public|private|protected)\s+)?(?:readonly\s+)?`
)

// @Inject(forwardRef(() => X)) private readonly x: X,
var forwardRefPattern = `(?P<prefix>@Inject\(\s*forwardRef\(\s*\(\s*\)\s*=>\s*[^)]+\)\s*\)\s*` +
	modifiers + ident + `\??\s*:\s*)` +
	`(?P<type>` + ident + `)` +
	`(?P<suffix>\s*[,)])`

// @ManyToOne(() => Y, (y) => y.items) @JoinColumn() y: Y;
var manyToOnePattern = `(?P<prefix>@ManyToOne\(\s*\(\s*\)\s*=>\s*[^,()]+,\s*` +
	`(?:\([^()]*\)|` + ident + `)\s*=>\s*[^)]+\)\s*` +
	`(?:@` + ident + `(?:\.` + ident + `)*(?:\((?:[^()]|\([^()]*\))*\))?\s*)*` +
	modifiers + ident + `[?!]?\s*:\s*)` +
	`(?P<type>` + ident + `)` +
	`(?P<suffix>\s*;)`

// 🧩 NewForwardRefMatcher matches injected constructor parameters resolved through forwardRef
func NewForwardRefMatcher() *Matcher {
	return NewMatcher(RuleForwardRef, forwardRefPattern, RelationType)
}

// 🧩 NewManyToOneMatcher matches @ManyToOne decorated properties
func NewManyToOneMatcher() *Matcher {
	return NewMatcher(RuleManyToOne, manyToOnePattern, RelationType)
}

// 📥 ImportRule ensures the Relation type is imported from the ORM package.
//
// The detector accepts every layout the injector produces, plus single
// quotes, import type, multi-symbol lists and a missing semicolon.
type ImportRule struct {
	pkg     string
	present *regexp.Regexp
}

// 🏭 NewImportRule creates the import rule for the given ORM package
func NewImportRule(pkg string) *ImportRule {
	if pkg == "" {
		pkg = DefaultORMPackage
	}
	present := fmt.Sprintf(`\bimport\s+(?:type\s+)?\{[^}]*\b%s\b[^}]*\}\s*from\s*["']%s["']`,
		RelationType, regexp.QuoteMeta(pkg))
	return &ImportRule{
		pkg:     pkg,
		present: regexp.MustCompile(present),
	}
}

// Name returns the rule name used in logs
func (r *ImportRule) Name() string {
	return RuleRelationImport
}

// Line returns the injected import statement without a line terminator
func (r *ImportRule) Line() string {
	return fmt.Sprintf(`import { %s } from "%s";`, RelationType, r.pkg)
}

// Present reports whether content already imports Relation from the package
func (r *ImportRule) Present(content string) bool {
	return r.present.MatchString(content)
}

const byteOrderMark = "\uFEFF"

// Apply prepends the import line when it is missing. A leading byte order
// mark stays the first thing in the file.
func (r *ImportRule) Apply(content string) (string, bool) {
	if r.Present(content) {
		return content, false
	}
	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}
	bom := ""
	if strings.HasPrefix(content, byteOrderMark) {
		bom = byteOrderMark
		content = strings.TrimPrefix(content, byteOrderMark)
	}
	return bom + r.Line() + eol + content, true
}
