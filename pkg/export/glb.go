package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/material"
	"github.com/chazu/gemforge/pkg/scene"
)

// GLB encodes a selection as binary glTF 2.0: one node and one mesh per
// part, materials shared by identity. No cameras or lights are written.
type GLB struct{}

// Format implements Encoder.
func (GLB) Format() string { return "glb" }

// Encode implements Encoder.
func (GLB) Encode(f *os.File, sel Selection, opts Options) error {
	doc, err := Document(sel, opts)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return w.Flush()
}

// Document builds the glTF document for a selection.
//
// A part whose parent is also selected becomes a child node translated
// relative to the parent; every other part is a scene root placed at
// its product-frame position.
func Document(sel Selection, opts Options) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = opts.Generator
	extras := map[string]any{"parts": len(sel.Parts)}
	if opts.RunID != "" {
		extras["run_id"] = opts.RunID
	}
	doc.Asset.Extras = extras

	materials := make(map[*material.Material]int)
	nodes := make(map[*scene.Part]int, len(sel.Parts))

	for _, p := range sel.Parts {
		mesh := &gltf.Mesh{Name: p.Name}
		prim, err := primitive(doc, p.Mesh)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", p.Name, err)
		}
		if p.Material != nil {
			mi, ok := materials[p.Material]
			if !ok {
				mi = len(doc.Materials)
				doc.Materials = append(doc.Materials, gltfMaterial(p.Material))
				materials[p.Material] = mi
			}
			prim.Material = gltf.Index(mi)
		}
		mesh.Primitives = []*gltf.Primitive{prim}
		doc.Meshes = append(doc.Meshes, mesh)

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:     p.Name,
			Mesh:     gltf.Index(len(doc.Meshes) - 1),
			Rotation: [4]float64{0, 0, 0, 1},
			Scale:    [3]float64{1, 1, 1},
			Extras:   map[string]any{"role": p.Role.String()},
		})
		nodes[p] = len(doc.Nodes) - 1
	}

	// Wire the hierarchy once every node exists.
	for _, p := range sel.Parts {
		ni := nodes[p]
		pos := p.Transform.Position
		if parent := sel.Graph.Parent(p.Name); parent != nil && sel.Contains(parent) {
			pi := nodes[parent]
			doc.Nodes[pi].Children = append(doc.Nodes[pi].Children, ni)
			pos = pos.Sub(parent.Transform.Position)
		} else {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, ni)
		}
		doc.Nodes[ni].Translation = [3]float64{pos[0], pos[1], pos[2]}
	}
	return doc, nil
}

func primitive(doc *gltf.Document, m *kernel.Mesh) (*gltf.Primitive, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	n := m.VertexCount()
	positions := make([][3]float32, n)
	normals := make([][3]float32, n)
	for i := 0; i < n; i++ {
		copy(positions[i][:], m.Vertices[3*i:3*i+3])
		copy(normals[i][:], m.Normals[3*i:3*i+3])
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)

	return &gltf.Primitive{
		Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
		Attributes: gltf.PrimitiveAttributes{
			"POSITION": modeler.WritePosition(doc, positions),
			"NORMAL":   modeler.WriteNormal(doc, normals),
		},
	}, nil
}

func gltfMaterial(m *material.Material) *gltf.Material {
	d := m.Descriptor()
	base := d.BaseColor
	gm := &gltf.Material{
		Name:        m.Name(),
		DoubleSided: d.ShowTransparentBack,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  gltf.Float(d.Metallic),
			RoughnessFactor: gltf.Float(d.Roughness),
		},
		AlphaMode: gltf.AlphaOpaque,
	}
	if d.Alpha == material.AlphaBlend {
		gm.AlphaMode = gltf.AlphaBlend
	}
	if d.HasIOR() {
		gm.Extras = map[string]any{"ior": d.IOR}
	}
	return gm
}
