package meshopt

// MergeByLayer concatenates meshes sharing the same layer into one mesh
// per layer (§4.H: "merge all meshes that share a layer into one" before
// the post-mesh optimization passes run). Layer order in the result
// follows first-occurrence order of the input.
func MergeByLayer(meshes []*Mesh) []*Mesh {
	order := make([]string, 0, len(meshes))
	byLayer := make(map[string]*Mesh)

	for _, m := range meshes {
		merged, ok := byLayer[m.Layer]
		if !ok {
			merged = &Mesh{Layer: m.Layer}
			byLayer[m.Layer] = merged
			order = append(order, m.Layer)
		}
		offset := uint32(len(merged.Vertices))
		merged.Vertices = append(merged.Vertices, m.Vertices...)
		for _, idx := range m.TriangleIndices {
			merged.TriangleIndices = append(merged.TriangleIndices, idx+offset)
		}
	}

	out := make([]*Mesh, 0, len(order))
	for _, layer := range order {
		out = append(out, byLayer[layer])
	}
	return out
}
