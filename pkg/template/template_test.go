package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		ctx  map[string]string
		want string
	}{
		{
			name: "substitutes known keys",
			tmpl: "Hi {customerName}, your warranty for {productTitle} expires on {warrantyEndDate}.",
			ctx: map[string]string{
				"customerName":    "Aamir",
				"productTitle":    "ThinkPad X1",
				"warrantyEndDate": "4 February 2024",
			},
			want: "Hi Aamir, your warranty for ThinkPad X1 expires on 4 February 2024.",
		},
		{
			name: "missing keys stay literal",
			tmpl: "Hi {customerName}, see {unknownKey}.",
			ctx:  map[string]string{"customerName": "Aamir"},
			want: "Hi Aamir, see {unknownKey}.",
		},
		{
			name: "repeated placeholder",
			tmpl: "{name} and {name}",
			ctx:  map[string]string{"name": "Bilal"},
			want: "Bilal and Bilal",
		},
		{
			name: "empty context leaves template untouched",
			tmpl: "Is {productTitle} still in stock?",
			ctx:  nil,
			want: "Is {productTitle} still in stock?",
		},
		{
			name: "braces without a valid key are not placeholders",
			tmpl: "literal {} and {123} stay",
			ctx:  map[string]string{"123": "x"},
			want: "literal {} and {123} stay",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.tmpl, tt.ctx))
		})
	}
}
