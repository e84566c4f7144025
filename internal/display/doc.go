// Package display formats CLI-level notices that sit outside the renderer's
// severity styles, such as a missing audio player or an ignored setting.
//
//	display.Warning{
//	    Title:      "Alert sound unavailable",
//	    Message:    "No audio player was found",
//	    Details:    []string{"mpg123", "ffplay", "paplay"},
//	    Suggestion: "Install one of the players or set sound.backend: none",
//	}.Display(os.Stderr)
//
// Colors follow fatih/color detection, so NO_COLOR and redirected output
// produce plain text.
package display
