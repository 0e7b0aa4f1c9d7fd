// Package completion provides the completion popup link.
//
// The popup opens on Ctrl+Space with words from the buffer that extend the
// word before the caret. While it is open:
//   - Up and Down move the selection (wrapping)
//   - Enter and Tab accept the selected item
//   - Escape closes the popup
//   - Word characters and Backspace reach the buffer and narrow the list
//
// Any other key closes the popup and continues down the chain. The link
// reports open and close transitions so hosts can suppress other key
// handling while the popup is visible.
package completion
