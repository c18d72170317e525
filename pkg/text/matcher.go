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
	"regexp"
	"strings"
)

// 📍 Span is a half-open byte range [Start, End) within file contents
type Span struct {
	Start int
	End   int
}

// 🔍 Matcher detects one pattern class and wraps the captured type.
//
// The pattern must expose three named groups: prefix, type and suffix. A
// match is rewritten to prefix + Wrapper<type> + suffix.
type Matcher struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
}

// 🏭 NewMatcher compiles a matcher that wraps matched types in wrapper
func NewMatcher(name string, pattern string, wrapper string) *Matcher {
	re := regexp.MustCompile(pattern)
	for _, group := range []string{"prefix", "type", "suffix"} {
		if re.SubexpIndex(group) < 0 {
			panic("text: matcher " + name + " is missing capture group " + group)
		}
	}
	return &Matcher{
		name:        name,
		pattern:     re,
		replacement: "${prefix}" + wrapper + "<${type}>${suffix}",
	}
}

// Name returns the rule name used in logs
func (m *Matcher) Name() string {
	return m.name
}

// Matches reports whether the pattern occurs anywhere in content
func (m *Matcher) Matches(content string) bool {
	return m.pattern.MatchString(content)
}

// Find returns the spans of every non-overlapping match, in order
func (m *Matcher) Find(content string) []Span {
	locs := m.pattern.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

// Types returns the captured type names in match order
func (m *Matcher) Types(content string) []string {
	idx := m.pattern.SubexpIndex("type")
	var types []string
	for _, sub := range m.pattern.FindAllStringSubmatch(content, -1) {
		types = append(types, strings.TrimSpace(sub[idx]))
	}
	return types
}

// 🔄 Apply rewrites every match and returns the new content and match count
func (m *Matcher) Apply(content string) (string, int) {
	count := len(m.pattern.FindAllStringIndex(content, -1))
	if count == 0 {
		return content, 0
	}
	return m.pattern.ReplaceAllString(content, m.replacement), count
}
