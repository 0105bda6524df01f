package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/esmbridge/internal/ui/style"
)

func TestFormatColor(t *testing.T) {
	assert.Equal(t, style.Iris, style.FormatColor("module"))
	assert.Equal(t, style.Yellow, style.FormatColor("commonjs"))
	assert.Equal(t, style.Teal, style.FormatColor("builtin"))
	assert.Equal(t, style.Slate, style.FormatColor("wasm"))
}
