package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"randscene/core"
	"randscene/math"
)

// ExportGLTF writes every visible object of s to a binary glTF (.glb) file.
// Lambert colors map onto the PBR base color; reflective materials get a
// metallic factor equal to their reflectivity.
func ExportGLTF(s *Scene, path string) error {
	doc := gltf.NewDocument()

	for i, n := range s.GetVisibleNodes() {
		mesh := n.Geometry.Mesh
		if mesh == nil || len(mesh.Vertices) == 0 {
			continue
		}

		positions := make([][3]float32, len(mesh.Vertices))
		normals := make([][3]float32, len(mesh.Vertices))
		uvs := make([][2]float32, len(mesh.Vertices))
		for vi, v := range mesh.Vertices {
			positions[vi] = v.Position.Array()
			normals[vi] = v.Normal.Array()
			uvs[vi] = [2]float32{v.UV.X, v.UV.Y}
		}

		prim := &gltf.Primitive{
			Indices: gltf.Index(modeler.WriteIndices(doc, mesh.Indices)),
			Attributes: map[string]int{
				gltf.POSITION:   modeler.WritePosition(doc, positions),
				gltf.NORMAL:     modeler.WriteNormal(doc, normals),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
			},
		}
		if n.Material != nil {
			doc.Materials = append(doc.Materials, gltfMaterial(n.Name, n.Material))
			prim.Material = gltf.Index(len(doc.Materials) - 1)
		}

		name := n.Name
		if name == "" {
			name = fmt.Sprintf("object_%d", i)
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       fmt.Sprintf("%s_%s", name, n.Geometry.Kind()),
			Primitives: []*gltf.Primitive{prim},
		})

		t := n.Transform
		q := t.Quaternion().Normalize()
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        name,
			Mesh:        gltf.Index(len(doc.Meshes) - 1),
			Translation: toFloat64x3(t.Position),
			Rotation:    [4]float64{float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)},
			Scale:       toFloat64x3(t.Scale),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save gltf %q: %w", path, err)
	}
	return nil
}

func gltfMaterial(name string, m *Material) *gltf.Material {
	metallic := 0.0
	if m.EnvMap != nil && m.EnvMap.Mapping == CubeReflection {
		metallic = float64(m.Reflectivity)
	}
	return &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(m.Color.R), float64(m.Color.G), float64(m.Color.B), 1},
			MetallicFactor:  gltf.Float(metallic),
			RoughnessFactor: gltf.Float(1 - metallic),
		},
	}
}

func toFloat64x3(v math.Vec3) [3]float64 {
	return [3]float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

// LoadGLTFMeshes reads back the mesh primitives of a .glb or .gltf file,
// one Mesh per primitive, in document order.
func LoadGLTFMeshes(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var meshes []*Mesh
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := loadGLTFPrimitive(doc, gm.Name, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d prim %d: %w", mi, pi, err)
			}
			meshes = append(meshes, m)
		}
	}
	return meshes, nil
}

func loadGLTFPrimitive(doc *gltf.Document, name string, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		verts[i].Position = math.NewVec3(p[0], p[1], p[2])
		if i < len(normals) {
			verts[i].Normal = math.NewVec3(normals[i][0], normals[i][1], normals[i][2])
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	return CreateMeshFromData(name, verts, indices), nil
}
