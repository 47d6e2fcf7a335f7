package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripReasoning(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no reasoning", "直接回答。", "直接回答。"},
		{"think block", "<think>推理过程</think>\n最终回答。", "最终回答。"},
		{"unterminated think", "<think>推理过程", "<think>推理过程"},
		{"surrounding whitespace", "  回答  ", "回答"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripReasoning(tc.in))
		})
	}
}
