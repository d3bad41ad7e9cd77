// internal/render/palette.go
package render

import "github.com/tamzrod/chargeflow/internal/classify"

// Palette maps color tokens to hex paint values (no leading '#').
// ColorNone has no entry: it paints nothing.
var Palette = map[classify.ColorToken]string{
	classify.ColorSuccess:    "22c55e",
	classify.ColorWarning:    "eab308",
	classify.ColorError:      "ef4444",
	classify.ColorInfo:       "3b82f6",
	classify.ColorIdle:       "9ca3af",
	classify.ColorSecondary:  "ec4899",
	classify.ColorSupplement: "a855f7",
	classify.ColorDischarge:  "ffa500",
	classify.ColorBlocked:    "333333",
}
