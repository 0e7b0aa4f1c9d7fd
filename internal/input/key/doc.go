// Package key provides key event types and key-spec parsing.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Shift, Ctrl, Alt and Meta flags
//   - Event: one key press
//
// # Key Specifications
//
// Scripts and tests name keys with short specs:
//
//   - Simple keys: "a", "Enter", "Backspace", "Left"
//   - With modifiers: "Shift+Right", "Ctrl+Space"
//   - Dash form: "S-Right", "C-Space"
//   - Bracketed: "<S-Down>", "<BS>", "<CR>"
//
// ParseSequence splits a whitespace-separated list of specs.
package key
