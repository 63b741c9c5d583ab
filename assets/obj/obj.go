// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This package is based on the gi3d obj decoder, which in turn is based
// extensively on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj parses the Wavefront OBJ file format (*.obj), including
// associated materials (*.mtl), into meshes of triangles ready for the GPU.
// Not all features of the OBJ format are supported.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"cogentcore.org/scene3d/math32"
	"cogentcore.org/scene3d/shape"
)

// Model is a decoded OBJ file: one mesh per object and material run,
// and the materials they index.
type Model struct {
	Name      string
	Meshes    []Mesh
	Materials []Material

	// Warnings lists unsupported lines and missing materials.
	Warnings []string
}

// Mesh is a triangle list with 32-bit indices.
type Mesh struct {
	Name     string
	Vertices []shape.Vertex
	Indices  []uint32

	// Material is the index into [Model.Materials].
	Material int
}

// Material contains the material parameters used for shading.
type Material struct {
	Name      string
	Ambient   math32.Vector3
	Diffuse   math32.Vector3
	Specular  math32.Vector3
	Shininess float32 // specular exponent
	Opacity   float32

	// MapKd is the diffuse texture file, relative to the mtl file.
	MapKd string
}

// DefaultMaterial is used for faces without a material,
// or whose material cannot be found.
var DefaultMaterial = Material{
	Name:      "default",
	Ambient:   math32.Vec3(1, 1, 1),
	Diffuse:   math32.Vec3(1, 1, 1),
	Specular:  math32.Vec3(1, 1, 1),
	Shininess: 32,
	Opacity:   1,
}

// ErrNoFaces is returned for a file without any faces.
var ErrNoFaces = errors.New("obj: no faces")

const invIndex = -1

// face is one polygon, as indices into the decoder arrays.
type face struct {
	vertices []int
	uvs      []int
	normals  []int
	material string
}

type object struct {
	name  string
	faces []face
}

// decoder holds the state of one decode.
type decoder struct {
	scale     float32
	objects   []object
	matlib    string
	materials map[string]*Material
	matOrder  []string
	vertices  []math32.Vector3
	normals   []math32.Vector3
	uvs       []math32.Vector2
	warnings  []string
	line      int
	objCur    *object
	matCur    *Material
}

func newDecoder(scale float32) *decoder {
	if scale == 0 {
		scale = 1
	}
	return &decoder{scale: scale, materials: map[string]*Material{}}
}

// Decode reads an obj file and its optional mtl file (mtl may be nil),
// scaling all positions by scale (0 means 1).
func Decode(objr, mtlr io.Reader, scale float32) (*Model, error) {
	dec := newDecoder(scale)
	if err := dec.parse(objr, dec.parseObjLine); err != nil {
		return nil, fmt.Errorf("obj: line %d: %w", dec.line, err)
	}
	if mtlr != nil {
		dec.matCur = nil
		if err := dec.parse(mtlr, dec.parseMtlLine); err != nil {
			return nil, fmt.Errorf("obj: mtl line %d: %w", dec.line, err)
		}
	}
	return dec.model()
}

// Open decodes fname from fsys, together with the mtl file named by its
// mtllib line, or else with the same base name, if present.
func Open(fsys fs.FS, fname string, scale float32) (*Model, error) {
	objf, err := fsys.Open(fname)
	if err != nil {
		return nil, err
	}
	defer objf.Close()
	dec := newDecoder(scale)
	if err := dec.parse(objf, dec.parseObjLine); err != nil {
		return nil, fmt.Errorf("obj: %s:%d: %w", fname, dec.line, err)
	}
	mtlName := dec.matlib
	if mtlName == "" {
		mtlName = strings.TrimSuffix(path.Base(fname), path.Ext(fname)) + ".mtl"
	}
	mtlPath := path.Join(path.Dir(fname), mtlName)
	if mtlf, err := fsys.Open(mtlPath); err == nil {
		defer mtlf.Close()
		dec.matCur = nil
		if err := dec.parse(mtlf, dec.parseMtlLine); err != nil {
			return nil, fmt.Errorf("obj: %s:%d: %w", mtlPath, dec.line, err)
		}
	} else if dec.matlib != "" {
		dec.appendWarn(fmt.Sprintf("material library %s: %v", mtlPath, err))
	}
	m, err := dec.model()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, fname)
	}
	m.Name = fname
	return m, nil
}

// parse reads the lines from the specified reader and dispatch them
// to the specified line parser.
func (dec *decoder) parse(reader io.Reader, parseLine func(fields []string) error) error {
	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	dec.line = 0
	for sc.Scan() {
		dec.line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := parseLine(fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (dec *decoder) parseObjLine(fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "mtllib":
		if len(args) < 1 {
			return errors.New("mtllib with no fields")
		}
		dec.matlib = args[0]
	// groups are treated as objects
	case "o", "g":
		name := fmt.Sprintf("unnamed%d", dec.line)
		if len(args) > 0 {
			name = args[0]
		}
		dec.newObject(name)
	case "v":
		v, err := parseVec3(args)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		dec.vertices = append(dec.vertices, v.MulScalar(dec.scale))
	case "vn":
		v, err := parseVec3(args)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		dec.normals = append(dec.normals, v)
	case "vt":
		if len(args) < 2 {
			return errors.New("less than 2 texture coords in vt")
		}
		u, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return err
		}
		// OBJ has v up; textures have row 0 at the top.
		dec.uvs = append(dec.uvs, math32.Vec2(float32(u), 1-float32(v)))
	case "f":
		return dec.parseFace(args)
	case "usemtl":
		if len(args) < 1 {
			return errors.New("usemtl with no fields")
		}
		dec.matCur = dec.material(args[0])
	case "s", "l", "p":
	default:
		dec.appendWarn("field not supported: " + fields[0])
	}
	return nil
}

func (dec *decoder) newObject(name string) {
	dec.objects = append(dec.objects, object{name: name})
	dec.objCur = &dec.objects[len(dec.objects)-1]
}

// material returns the named material, creating it with the
// default parameters if needed.
func (dec *decoder) material(name string) *Material {
	mat := dec.materials[name]
	if mat == nil {
		mat = new(Material)
		*mat = DefaultMaterial
		mat.Name = name
		dec.materials[name] = mat
		dec.matOrder = append(dec.matOrder, name)
	}
	return mat
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *decoder) parseFace(fields []string) error {
	if dec.objCur == nil {
		// faces before any g or o line are allowed
		dec.newObject(fmt.Sprintf("unnamed%d", dec.line))
	}
	if len(fields) < 3 {
		return errors.New("face with less than 3 vertices")
	}
	fc := face{
		vertices: make([]int, len(fields)),
		uvs:      make([]int, len(fields)),
		normals:  make([]int, len(fields)),
	}
	if dec.matCur != nil {
		fc.material = dec.matCur.Name
	}
	for pos, f := range fields {
		parts := strings.Split(f, "/")
		var err error
		if fc.vertices[pos], err = resolveIndex(parts[0], len(dec.vertices)); err != nil {
			return fmt.Errorf("face vertex: %w", err)
		}
		fc.uvs[pos], fc.normals[pos] = invIndex, invIndex
		if len(parts) > 1 && parts[1] != "" {
			if fc.uvs[pos], err = resolveIndex(parts[1], len(dec.uvs)); err != nil {
				return fmt.Errorf("face uv: %w", err)
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if fc.normals[pos], err = resolveIndex(parts[2], len(dec.normals)); err != nil {
				return fmt.Errorf("face normal: %w", err)
			}
		}
	}
	dec.objCur.faces = append(dec.objCur.faces, fc)
	return nil
}

// resolveIndex converts a 1-based (or negative, relative to the end)
// OBJ index into a 0-based index into an array of length n.
func resolveIndex(s string, n int) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	idx := val - 1
	if val < 0 {
		idx = n + val
	}
	if val == 0 || idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d out of range [1, %d]", val, n)
	}
	return idx, nil
}

func (dec *decoder) parseMtlLine(fields []string) error {
	args := fields[1:]
	if fields[0] == "newmtl" {
		if len(args) < 1 {
			return errors.New("newmtl with no fields")
		}
		dec.matCur = dec.material(args[0])
		return nil
	}
	if dec.matCur == nil {
		return fmt.Errorf("%s before newmtl", fields[0])
	}
	mat := dec.matCur
	var err error
	switch fields[0] {
	case "Ka":
		mat.Ambient, err = parseVec3(args)
	case "Kd":
		mat.Diffuse, err = parseVec3(args)
	case "Ks":
		mat.Specular, err = parseVec3(args)
	case "Ns":
		mat.Shininess, err = parseFloat(args)
	case "d":
		mat.Opacity, err = parseFloat(args)
	case "map_Kd":
		if len(args) < 1 {
			return errors.New("map_Kd with no fields")
		}
		// options come before the file name
		mat.MapKd = args[len(args)-1]
	case "Ke", "Ni", "illum", "Tr", "Tf":
	default:
		dec.appendWarn("mtl field not supported: " + fields[0])
	}
	if err != nil {
		return fmt.Errorf("%s: %w", fields[0], err)
	}
	return nil
}

func parseFloat(fields []string) (float32, error) {
	if len(fields) < 1 {
		return 0, errors.New("missing value")
	}
	val, err := strconv.ParseFloat(fields[0], 32)
	return float32(val), err
}

func parseVec3(fields []string) (math32.Vector3, error) {
	if len(fields) < 3 {
		return math32.Vector3{}, errors.New("less than 3 fields")
	}
	var xyz [3]float32
	for i, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return math32.Vector3{}, err
		}
		xyz[i] = float32(val)
	}
	return math32.Vec3(xyz[0], xyz[1], xyz[2]), nil
}

func (dec *decoder) appendWarn(msg string) {
	dec.warnings = append(dec.warnings, fmt.Sprintf("line %d: %s", dec.line, msg))
}

// model builds the meshes: one per object and run of faces with the
// same material. Polygons are triangulated as fans around their first vertex.
func (dec *decoder) model() (*Model, error) {
	m := &Model{}
	matIndex := map[string]int{}
	for _, name := range dec.matOrder {
		matIndex[name] = len(m.Materials)
		m.Materials = append(m.Materials, *dec.materials[name])
	}
	defIndex := -1
	materialOf := func(name string) int {
		if i, ok := matIndex[name]; ok {
			return i
		}
		if name != "" {
			dec.appendWarn(fmt.Sprintf("material %q not found, using default", name))
		}
		if defIndex < 0 {
			defIndex = len(m.Materials)
			m.Materials = append(m.Materials, DefaultMaterial)
		}
		return defIndex
	}

	for oi := range dec.objects {
		ob := &dec.objects[oi]
		var ms *Mesh
		for fi := range ob.faces {
			fc := &ob.faces[fi]
			mat := materialOf(fc.material)
			if ms == nil || ms.Material != mat {
				m.Meshes = append(m.Meshes, Mesh{Name: fmt.Sprintf("%s_%d", ob.name, len(m.Meshes)), Material: mat})
				ms = &m.Meshes[len(m.Meshes)-1]
			}
			dec.addFace(ms, fc)
		}
	}
	m.Warnings = dec.warnings
	if len(m.Meshes) == 0 {
		return nil, ErrNoFaces
	}
	return m, nil
}

// addFace copies the face vertices into ms and adds the fan triangles
// (0, i-1, i). Vertices without a normal get the face normal.
func (dec *decoder) addFace(ms *Mesh, fc *face) {
	base := uint32(len(ms.Vertices))
	a := dec.vertices[fc.vertices[0]]
	b := dec.vertices[fc.vertices[1]]
	c := dec.vertices[fc.vertices[2]]
	flat := b.Sub(a).Cross(c.Sub(a)).Normal()
	for i := range fc.vertices {
		vtx := shape.Vertex{Pos: dec.vertices[fc.vertices[i]], Normal: flat}
		if fc.uvs[i] != invIndex {
			vtx.TexCoord = dec.uvs[fc.uvs[i]]
		}
		if fc.normals[i] != invIndex {
			vtx.Normal = dec.normals[fc.normals[i]]
		}
		ms.Vertices = append(ms.Vertices, vtx)
	}
	for i := 2; i < len(fc.vertices); i++ {
		ms.Indices = append(ms.Indices, base, base+uint32(i-1), base+uint32(i))
	}
}
