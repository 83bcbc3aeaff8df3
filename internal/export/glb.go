// Package export writes puzzle snapshots as binary glTF scenes.
package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/SeamusWaldron/twisty"
)

// BodyColor is the colour of cubie faces without a sticker.
const BodyColor = "#111111"

// Scene builds a glTF document with one node per cubie. Every cubie shares
// the box geometry and gets its own vertex colours; the node matrix places
// it. Cubies in the layers of inflight are turned by its current angle.
func Scene(p *twisty.Puzzle, colors twisty.ColorScheme, inflight *twisty.Rotation) (*gltf.Document, error) {
	body, err := ParseHexColor(BodyColor)
	if err != nil {
		return nil, err
	}
	faceColors := make(map[byte][4]float32, len(twisty.FaceOrder))
	for i := 0; i < len(twisty.FaceOrder); i++ {
		c, err := ParseHexColor(colors[i])
		if err != nil {
			return nil, fmt.Errorf("face %c: %w", twisty.FaceOrder[i], err)
		}
		faceColors[twisty.FaceOrder[i]] = c
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "twisty -> GLB"

	half := float32(p.Layout().PieceSize / 2)
	positions, normals, indices := box(half)
	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{
		Name:                 "Plastic",
		PBRMetallicRoughness: pbr,
		AlphaMode:            gltf.AlphaOpaque,
	}}

	order := p.Order()
	cubies := p.Cubies()
	transforms := p.Transforms(inflight)
	for i, c := range cubies {
		vertexColors := make([][4]float32, len(positions))
		for j := range vertexColors {
			vertexColors[j] = body
		}
		for _, s := range c.Stickers(order) {
			face := boxFace(s.Normal)
			for v := 0; v < 4; v++ {
				vertexColors[face*4+v] = faceColors[s.Face]
			}
		}
		colorAccessor := modeler.WriteColor(doc, vertexColors)

		prim := &gltf.Primitive{
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION: posAccessor,
				gltf.NORMAL:   normalAccessor,
				gltf.COLOR_0:  colorAccessor,
			},
			Indices:  gltf.Index(indicesAccessor),
			Material: gltf.Index(0),
		}
		name := fmt.Sprintf("%s%d", c.Kind, c.Index)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   name,
			Mesh:   gltf.Index(len(doc.Meshes) - 1),
			Matrix: nodeMatrix(transforms[i]),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	return doc, nil
}

// WriteGLB encodes doc as binary glTF.
func WriteGLB(w io.Writer, doc *gltf.Document) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes the scene of p to path.
func SaveGLB(path string, p *twisty.Puzzle, colors twisty.ColorScheme) error {
	doc, err := Scene(p, colors, nil)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteGLB(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseHexColor converts "#rrggbb" to linear RGBA in [0, 1].
func ParseHexColor(s string) ([4]float32, error) {
	if len(s) != 7 || s[0] != '#' {
		return [4]float32{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return [4]float32{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return [4]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
		1,
	}, nil
}

// box returns a cube of half size h with four vertices per face so each
// face can carry its own colour. Faces are ordered +x -x +y -y +z -z.
func box(h float32) ([][3]float32, [][3]float32, []uint32) {
	var positions, normals [][3]float32
	var indices []uint32
	for face := 0; face < 6; face++ {
		axis, s := face/2, float32(1-2*(face%2))
		var n, u, v [3]float32
		n[axis] = s
		u[(axis+1)%3] = 1
		v[(axis+2)%3] = 1
		if s < 0 {
			u, v = v, u
		}
		base := uint32(len(positions))
		for _, k := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p [3]float32
			for a := 0; a < 3; a++ {
				p[a] = h * (n[a] + k[0]*u[a] + k[1]*v[a])
			}
			positions = append(positions, p)
			normals = append(normals, n)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return positions, normals, indices
}

// boxFace returns the box face index of an axis-aligned unit normal.
func boxFace(n [3]int) int {
	for axis := 0; axis < 3; axis++ {
		switch n[axis] {
		case 1:
			return axis * 2
		case -1:
			return axis*2 + 1
		}
	}
	return 0
}

// nodeMatrix converts a transform to a column-major glTF matrix.
func nodeMatrix(t twisty.Transform) [16]float64 {
	var m [16]float64
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col*4+row] = t.Rotation[row][col]
		}
		m[12+col] = t.Position[col]
	}
	m[15] = 1
	return m
}
