package export

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// Summary describes a written glTF file.
type Summary struct {
	Generator string
	RunID     string
	Nodes     int
	Roots     int
	Meshes    int
	Materials int
	Triangles int
	NodeNames []string
	Cameras   int
	Lights    bool
}

// Inspect parses the glTF or GLB file at path.
func Inspect(path string) (Summary, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("inspect %s: %w", path, err)
	}
	return Summarize(doc), nil
}

// Summarize counts the contents of doc.
func Summarize(doc *gltf.Document) Summary {
	s := Summary{
		Generator: doc.Asset.Generator,
		Nodes:     len(doc.Nodes),
		Meshes:    len(doc.Meshes),
		Materials: len(doc.Materials),
		Cameras:   len(doc.Cameras),
	}
	if extras, ok := doc.Asset.Extras.(map[string]any); ok {
		if id, ok := extras["run_id"].(string); ok {
			s.RunID = id
		}
	}
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		s.Roots = len(doc.Scenes[*doc.Scene].Nodes)
	}
	for _, n := range doc.Nodes {
		s.NodeNames = append(s.NodeNames, n.Name)
	}
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			if p.Indices != nil && *p.Indices < len(doc.Accessors) {
				s.Triangles += doc.Accessors[*p.Indices].Count / 3
			}
		}
	}
	_, s.Lights = doc.Extensions["KHR_lights_punctual"]
	return s
}
