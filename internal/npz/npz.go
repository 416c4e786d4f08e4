// Package npz reads and writes numpy .npz archives.
//
// An .npz file is a zip archive whose members are .npy arrays. The
// package covers the subset of the .npy format (version 1.0) used by
// the precomputed parameter files: little-endian float64 and complex128
// arrays of any shape, plus boolean, numeric and string scalars.
package npz

import (
	"archive/zip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrFormat is returned when a file is not a supported .npy/.npz file.
var ErrFormat = errors.New("npz: unsupported file format")

// Kind enumerates the supported array element types.
type Kind int

const (
	Float64 Kind = iota
	Complex128
	Bool
	String
)

// Value is a single named array of an archive.
type Value struct {
	Kind      Kind
	Shape     []int // empty for scalars
	Floats    []float64
	Complexes []complex128
	Bools     []bool
	Str       string
}

// Float64s wraps a float64 array with the given shape.
func Float64s(shape []int, data []float64) Value {
	return Value{Kind: Float64, Shape: shape, Floats: data}
}

// Complex128s wraps a complex128 array with the given shape.
func Complex128s(shape []int, data []complex128) Value {
	return Value{Kind: Complex128, Shape: shape, Complexes: data}
}

// Scalar wraps a float64 scalar.
func Scalar(v float64) Value {
	return Value{Kind: Float64, Floats: []float64{v}}
}

// BoolScalar wraps a boolean scalar.
func BoolScalar(v bool) Value {
	return Value{Kind: Bool, Bools: []bool{v}}
}

// StringScalar wraps a string scalar.
func StringScalar(v string) Value {
	return Value{Kind: String, Str: v}
}

func (v Value) count() int {
	n := 1
	for _, d := range v.Shape {
		n *= d
	}
	return n
}

func (v Value) validate() error {
	for _, d := range v.Shape {
		if d < 0 {
			return fmt.Errorf("npz: negative dimension in shape %v", v.Shape)
		}
	}

	n := v.count()
	switch v.Kind {
	case Float64:
		if len(v.Floats) != n {
			return fmt.Errorf("npz: shape %v wants %d elements, have %d", v.Shape, n, len(v.Floats))
		}
	case Complex128:
		if len(v.Complexes) != n {
			return fmt.Errorf("npz: shape %v wants %d elements, have %d", v.Shape, n, len(v.Complexes))
		}
	case Bool:
		if len(v.Bools) != n {
			return fmt.Errorf("npz: shape %v wants %d elements, have %d", v.Shape, n, len(v.Bools))
		}
	case String:
		if len(v.Shape) != 0 {
			return errors.New("npz: string values must be scalars")
		}
	}

	return nil
}

// Write stores the named values as a .npz archive at path. Members are
// written in sorted name order.
func Write(path string, values map[string]Value) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("npz: create %s: %w", path, err)
	}

	zw := zip.NewWriter(f)
	for _, name := range names {
		v := values[name]
		if err := v.validate(); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("npz: %s: %w", name, err)
		}

		w, err := zw.Create(name + ".npy")
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("npz: add %s: %w", name, err)
		}
		if err := writeNpy(w, v); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("npz: encode %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("npz: finalize %s: %w", path, err)
	}

	return f.Close()
}

// Read loads all members of a .npz archive.
func Read(path string) (map[string]Value, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("npz: open %s: %w", path, err)
	}
	defer zr.Close()

	values := make(map[string]Value, len(zr.File))
	for _, member := range zr.File {
		name := strings.TrimSuffix(member.Name, ".npy")

		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("npz: open member %s: %w", member.Name, err)
		}

		v, err := readNpy(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("npz: member %s: %w", member.Name, err)
		}

		values[name] = v
	}

	return values, nil
}

var npyMagic = []byte("\x93NUMPY")

func descr(v Value) string {
	switch v.Kind {
	case Float64:
		return "<f8"
	case Complex128:
		return "<c16"
	case Bool:
		return "|b1"
	case String:
		return fmt.Sprintf("<U%d", utf8.RuneCountInString(v.Str))
	default:
		return ""
	}
}

func shapeTuple(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	default:
		parts := make([]string, len(shape))
		for i, d := range shape {
			parts[i] = strconv.Itoa(d)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}

func writeNpy(w io.Writer, v Value) error {
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }",
		descr(v), shapeTuple(v.Shape))

	// Pad so that data starts on a 64-byte boundary, ending with \n.
	total := len(npyMagic) + 4 + len(header) + 1
	pad := (64 - total%64) % 64
	header += strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	switch v.Kind {
	case Float64:
		buf := make([]byte, 8*len(v.Floats))
		for i, x := range v.Floats {
			binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(x))
		}
		_, err := w.Write(buf)
		return err
	case Complex128:
		buf := make([]byte, 16*len(v.Complexes))
		for i, c := range v.Complexes {
			binary.LittleEndian.PutUint64(buf[16*i:], math.Float64bits(real(c)))
			binary.LittleEndian.PutUint64(buf[16*i+8:], math.Float64bits(imag(c)))
		}
		_, err := w.Write(buf)
		return err
	case Bool:
		buf := make([]byte, len(v.Bools))
		for i, b := range v.Bools {
			if b {
				buf[i] = 1
			}
		}
		_, err := w.Write(buf)
		return err
	case String:
		// Numpy unicode strings are UTF-32 little endian.
		buf := make([]byte, 0, 4*utf8.RuneCountInString(v.Str))
		for _, r := range v.Str {
			var word [4]byte
			binary.LittleEndian.PutUint32(word[:], uint32(r))
			buf = append(buf, word[:]...)
		}
		_, err := w.Write(buf)
		return err
	default:
		return ErrFormat
	}
}

var headerRe = regexp.MustCompile(
	`'descr':\s*'([^']+)'.*'fortran_order':\s*(True|False).*'shape':\s*\(([^)]*)\)`)

func readNpy(r io.Reader) (Value, error) {
	head := make([]byte, 10)
	if _, err := io.ReadFull(r, head); err != nil {
		return Value{}, err
	}
	if string(head[:6]) != string(npyMagic) {
		return Value{}, fmt.Errorf("%w: bad magic", ErrFormat)
	}
	if head[6] != 1 {
		return Value{}, fmt.Errorf("%w: npy version %d.%d", ErrFormat, head[6], head[7])
	}

	hlen := binary.LittleEndian.Uint16(head[8:])
	header := make([]byte, hlen)
	if _, err := io.ReadFull(r, header); err != nil {
		return Value{}, err
	}

	m := headerRe.FindStringSubmatch(string(header))
	if m == nil {
		return Value{}, fmt.Errorf("%w: unparsable header %q", ErrFormat, header)
	}
	if m[2] == "True" {
		return Value{}, fmt.Errorf("%w: fortran order not supported", ErrFormat)
	}

	var shape []int
	for _, part := range strings.Split(m[3], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad shape %q", ErrFormat, m[3])
		}
		shape = append(shape, d)
	}

	count := 1
	for _, d := range shape {
		count *= d
	}

	dtype := m[1]
	switch {
	case dtype == "<f8":
		buf := make([]byte, 8*count)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Value{}, err
		}
		data := make([]float64, count)
		for i := range data {
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
		}
		return Value{Kind: Float64, Shape: shape, Floats: data}, nil

	case dtype == "<c16":
		buf := make([]byte, 16*count)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Value{}, err
		}
		data := make([]complex128, count)
		for i := range data {
			re := math.Float64frombits(binary.LittleEndian.Uint64(buf[16*i:]))
			im := math.Float64frombits(binary.LittleEndian.Uint64(buf[16*i+8:]))
			data[i] = complex(re, im)
		}
		return Value{Kind: Complex128, Shape: shape, Complexes: data}, nil

	case dtype == "|b1":
		buf := make([]byte, count)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Value{}, err
		}
		data := make([]bool, count)
		for i := range data {
			data[i] = buf[i] != 0
		}
		return Value{Kind: Bool, Shape: shape, Bools: data}, nil

	case strings.HasPrefix(dtype, "<U"):
		runes, err := strconv.Atoi(dtype[2:])
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad dtype %q", ErrFormat, dtype)
		}
		buf := make([]byte, 4*runes*count)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Value{}, err
		}
		var sb strings.Builder
		for i := 0; i < 4*runes; i += 4 {
			r := rune(binary.LittleEndian.Uint32(buf[i:]))
			if r == 0 {
				break
			}
			sb.WriteRune(r)
		}
		return Value{Kind: String, Shape: shape, Str: sb.String()}, nil

	default:
		return Value{}, fmt.Errorf("%w: dtype %q", ErrFormat, dtype)
	}
}
