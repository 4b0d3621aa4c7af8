package scene

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
)

// Digest returns a SHA-256 over everything that ends up in an export:
// part order, names, parents, materials, transforms and baked meshes.
// Two runs with equal inputs and seed produce equal digests.
func (g *Graph) Digest() string {
	h := sha256.New()
	for _, p := range g.parts {
		writeString(h, p.Name)
		if pp := g.Parent(p.Name); pp != nil {
			writeString(h, pp.Name)
		} else {
			writeString(h, "")
		}
		if p.Material != nil {
			writeString(h, p.Material.Name())
		} else {
			writeString(h, "")
		}
		t := p.Transform
		writeFloats(h, t.Position[:]...)
		writeFloats(h, t.Rotation.X, t.Rotation.Y, t.Rotation.Z)
		writeFloats(h, t.Scale[:]...)
		writeFloats(h, p.Pivot[:]...)
		if p.Baked && p.Mesh != nil {
			_ = binary.Write(h, binary.LittleEndian, p.Mesh.Vertices)
			_ = binary.Write(h, binary.LittleEndian, p.Mesh.Indices)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeString(h hash.Hash, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}

func writeFloats(h hash.Hash, fs ...float64) {
	var b [8]byte
	for _, f := range fs {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	}
}
