package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "identical",
			before: "a\nb\n",
			after:  "a\nb\n",
			want:   "",
		},
		{
			name:   "changed_line",
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			want:   "-   2 | b\n+   2 | B\n",
		},
		{
			name:   "prepended_line",
			before: "x\n",
			after:  "import { Relation } from \"typeorm\";\nx\n",
			want:   "+   1 | import { Relation } from \"typeorm\";\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderDiff(tt.before, tt.after))
		})
	}
}
