package twisty

import "strings"

// FaceOrder is the face order of the facelet string and of ColorScheme.
const FaceOrder = "URFDLB"

// ColorScheme holds one colour per face in FaceOrder, as "#rrggbb".
type ColorScheme [6]string

// DefaultColorScheme is white on top, green in front, red on the right.
var DefaultColorScheme = ColorScheme{"#ffffff", "#b71234", "#009b48", "#ffd500", "#ff5800", "#0046ad"}

// ForFace returns the colour of a face letter, or "" if it is not a face.
func (cs ColorScheme) ForFace(letter byte) string {
	i := strings.IndexByte(FaceOrder, letter)
	if i < 0 {
		return ""
	}
	return cs[i]
}

// Valid reports whether every entry is a #rrggbb colour.
func (cs ColorScheme) Valid() bool {
	for _, c := range cs {
		if len(c) != 7 || c[0] != '#' {
			return false
		}
		for i := 1; i < 7; i++ {
			if strings.IndexByte("0123456789abcdefABCDEF", c[i]) < 0 {
				return false
			}
		}
	}
	return true
}

// faceNormals maps each face letter to its outward normal.
var faceNormals = map[byte][3]int{
	'U': {0, 1, 0},
	'R': {1, 0, 0},
	'F': {0, 0, 1},
	'D': {0, -1, 0},
	'L': {-1, 0, 0},
	'B': {0, 0, -1},
}

// faceForNormal returns the face letter whose outward normal is n.
func faceForNormal(n [3]int) byte {
	for letter, normal := range faceNormals {
		if normal == n {
			return letter
		}
	}
	return '?'
}
