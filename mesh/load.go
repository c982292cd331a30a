// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Йоу, чат! Тут читаємо меші з диска.
// Підтримуються ASCII PLY (так збережені сцени з тканиною) та OBJ.
// Багатокутники розбиваються на трикутники віялом від першої вершини.

package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ScalableCCD/broadphase"
)

// Load reads a mesh snapshot, picking the parser by file extension.
func Load(path string) (m *Mesh, errRet error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh fail: %w", err)
	}
	defer func(f *os.File) {
		err2 := f.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close mesh fail: %w", err2)
		}
	}(f)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply":
		m, err = ReadPLY(f)
	case ".obj":
		m, err = ReadOBJ(f)
	default:
		return nil, fmt.Errorf("%w: unknown extension %q", ErrFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses the "v" and "f" records of a Wavefront OBJ stream.
// Face tokens may carry texture and normal indices ("3/1/2") and
// negative indices relative to the last vertex.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := new(Mesh)
	sc := newScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVec(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			poly := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := objIndex(tok, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
				}
				poly = append(poly, idx)
			}
			if err := m.addPolygon(poly); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, m.Validate()
}

func objIndex(tok string, size int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	i, err := strconv.Atoi(tok)
	switch {
	case err != nil:
		return 0, err
	case i > 0:
		return i - 1, nil
	case i < 0:
		return size + i, nil
	}
	return 0, fmt.Errorf("vertex index 0")
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

type plyProperty struct {
	name string
	list bool
}

func (e *plyElement) prop(name string) int {
	for i, p := range e.props {
		if p.name == name {
			return i
		}
	}
	return -1
}

// ReadPLY parses an ASCII PLY stream with a "vertex" element carrying
// x, y and z and an optional "face" element with one list property.
// Other elements are skipped.
func ReadPLY(r io.Reader) (*Mesh, error) {
	sc := newScanner(r)
	elements, err := readPLYHeader(sc)
	if err != nil {
		return nil, err
	}

	m := new(Mesh)
	for i := range elements {
		e := &elements[i]
		for k := 0; k < e.count; k++ {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %s %d of %d: unexpected end of file", ErrFormat, e.name, k, e.count)
			}
			fields := strings.Fields(sc.Text())
			switch e.name {
			case "vertex":
				err = m.readPLYVertex(e, fields)
			case "face":
				err = m.readPLYFace(e, fields)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrFormat, e.name, k, err)
			}
		}
	}
	return m, m.Validate()
}

func readPLYHeader(sc *bufio.Scanner) ([]plyElement, error) {
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrFormat)
	}
	var elements []plyElement
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, fmt.Errorf("%w: unsupported format %q", ErrFormat, strings.Join(fields[1:], " "))
			}
		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrFormat, sc.Text())
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad element count %q", ErrFormat, fields[2])
			}
			elements = append(elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(elements) == 0 || len(fields) < 3 {
				return nil, fmt.Errorf("%w: bad property line %q", ErrFormat, sc.Text())
			}
			e := &elements[len(elements)-1]
			e.props = append(e.props, plyProperty{
				name: fields[len(fields)-1],
				list: fields[1] == "list",
			})
		case "end_header":
			return elements, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: missing end_header", ErrFormat)
}

func (m *Mesh) readPLYVertex(e *plyElement, fields []string) error {
	if len(fields) < len(e.props) {
		return fmt.Errorf("want %d values, got %d", len(e.props), len(fields))
	}
	var v broadphase.Vec3
	for d, name := range [3]string{"x", "y", "z"} {
		i := e.prop(name)
		if i < 0 {
			return fmt.Errorf("no %s property", name)
		}
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return err
		}
		v[d] = f
	}
	m.Vertices = append(m.Vertices, v)
	return nil
}

func (m *Mesh) readPLYFace(e *plyElement, fields []string) error {
	// скалярні властивості перед списком займають по одному полю
	at := -1
	for i, p := range e.props {
		if p.list {
			at = i
			break
		}
	}
	if at < 0 || at >= len(fields) {
		return fmt.Errorf("no vertex index list")
	}
	n, err := strconv.Atoi(fields[at])
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("negative index count %d", n)
	}
	if len(fields) < at+1+n {
		return fmt.Errorf("want %d indices, got %d", n, len(fields)-at-1)
	}
	poly := make([]int, n)
	for k := range poly {
		if poly[k], err = strconv.Atoi(fields[at+1+k]); err != nil {
			return err
		}
	}
	return m.addPolygon(poly)
}

func (m *Mesh) addPolygon(poly []int) error {
	if len(poly) < 3 {
		return fmt.Errorf("polygon with %d vertices", len(poly))
	}
	for k := 1; k+1 < len(poly); k++ {
		m.Faces = append(m.Faces, [3]int{poly[0], poly[k], poly[k+1]})
	}
	return nil
}

func parseVec(fields []string) (v broadphase.Vec3, err error) {
	if len(fields) < 3 {
		return v, fmt.Errorf("want 3 coordinates, got %d", len(fields))
	}
	for d := range v {
		if v[d], err = strconv.ParseFloat(fields[d], 64); err != nil {
			return v, err
		}
	}
	return v, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return sc
}
