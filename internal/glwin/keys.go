package glwin

import (
	"termwire/internal/render"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Key names follow bubbletea's KeyMsg.String.
var specialKeys = map[glfw.Key]render.Key{
	glfw.KeyEscape:    "esc",
	glfw.KeyEnter:     "enter",
	glfw.KeySpace:     " ",
	glfw.KeyTab:       "tab",
	glfw.KeyBackspace: "backspace",
	glfw.KeyUp:        "up",
	glfw.KeyDown:      "down",
	glfw.KeyLeft:      "left",
	glfw.KeyRight:     "right",
	glfw.KeyPageUp:    "pgup",
	glfw.KeyPageDown:  "pgdown",
	glfw.KeyHome:      "home",
	glfw.KeyEnd:       "end",
}

// keyName translates a GLFW key event into a logical key. Printable keys
// use the active keyboard layout.
func keyName(key glfw.Key, scancode int) (render.Key, bool) {
	if name, ok := specialKeys[key]; ok {
		return name, true
	}
	name := glfw.GetKeyName(key, scancode)
	if name == "" {
		return "", false
	}
	return render.Key(name), true
}
