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

// 🏷️ RewriteStatus tells the caller whether new contents must be written
type RewriteStatus int

const (
	Unchanged RewriteStatus = iota
	Changed
)

func (s RewriteStatus) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// 📦 RewriteResult is the outcome of running the engine over one file.
// Content is only set when Status is Changed.
type RewriteResult struct {
	Status       RewriteStatus
	Content      string
	Replacements int
	ImportAdded  bool
	Rules        []string
}

// 🔧 Engine applies the relation rewrite rules to whole-file text
type Engine struct {
	forwardRef     *Matcher
	manyToOne      *Matcher
	relationImport *ImportRule
}

// 🏭 NewEngine builds the rule set for the given ORM package.
// An empty package falls back to DefaultORMPackage.
func NewEngine(ormPackage string) *Engine {
	return &Engine{
		forwardRef:     NewForwardRefMatcher(),
		manyToOne:      NewManyToOneMatcher(),
		relationImport: NewImportRule(ormPackage),
	}
}

// Rules returns the rule names in the order they are applied
func (e *Engine) Rules() []string {
	return []string{e.forwardRef.Name(), e.manyToOne.Name(), e.relationImport.Name()}
}

// ImportLine returns the import statement the engine injects
func (e *Engine) ImportLine() string {
	return e.relationImport.Line()
}

// 🔄 Rewrite runs the rules over content.
//
// Both matchers are detected against the original text, then applied in
// order. The import rule only runs when one of them matched, and it sees the
// rewritten text.
func (e *Engine) Rewrite(content string) RewriteResult {
	hasForwardRef := e.forwardRef.Matches(content)
	hasManyToOne := e.manyToOne.Matches(content)
	if !hasForwardRef && !hasManyToOne {
		return RewriteResult{Status: Unchanged}
	}

	result := RewriteResult{Status: Changed}
	current := content

	if hasForwardRef {
		next, n := e.forwardRef.Apply(current)
		current = next
		result.Replacements += n
		result.Rules = append(result.Rules, e.forwardRef.Name())
	}

	if hasManyToOne {
		next, n := e.manyToOne.Apply(current)
		current = next
		result.Replacements += n
		result.Rules = append(result.Rules, e.manyToOne.Name())
	}

	if next, added := e.relationImport.Apply(current); added {
		current = next
		result.ImportAdded = true
		result.Rules = append(result.Rules, e.relationImport.Name())
	}

	result.Content = current
	return result
}
