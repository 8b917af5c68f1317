// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"

	"github.com/gogpu/ggterm"
)

//go:embed shaders/rect.wgsl
var rectShaderSource string

// variantHeader returns the define header selecting the shader path of a
// rect kind. The defines must stay in sync with shaders/rect.wgsl.
func variantHeader(kind ggterm.RectKind) string {
	switch kind {
	case ggterm.RectKindRoundedBg:
		return "#define DRAW_ROUNDED_BACKGROUND\n"
	case ggterm.RectKindUndercurl:
		return "#define DRAW_UNDERCURL\n"
	case ggterm.RectKindUnderDotted:
		return "#define DRAW_UNDER_DOTTED\n"
	case ggterm.RectKindUnderDashed:
		return "#define DRAW_UNDER_DASHED\n"
	default:
		return ""
	}
}
