package ncio

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Sentinel errors for ncio operations.
var (
	// ErrNoVar indicates that the named variable does not exist in the file.
	ErrNoVar = errors.New("ncio: variable not found")
	// ErrBadType indicates decoded values that do not fit the requested view.
	ErrBadType = errors.New("ncio: unexpected variable type")
)

// File is the read contract over a structured data file. Implementations are
// not safe for concurrent use.
type File interface {
	// Path returns the location the file was opened from.
	Path() string
	// HasVar reports whether the named variable exists.
	HasVar(name string) bool
	// Var looks a variable up by name. Missing variables yield ErrNoVar.
	Var(name string) (Var, error)
	// Close releases the underlying resources.
	Close() error
}

// Var gives typed access to one variable's decoded values.
type Var interface {
	// Name returns the variable name the Var was looked up under.
	Name() string
	// Dims returns the variable shape derived from the decoded nested
	// slices. Scalars (including strings) have an empty shape.
	Dims() []int
	// Float64s returns all numeric values flattened in row-major order.
	Float64s() ([]float64, error)
	// Ints returns all integer values flattened in row-major order.
	// Floating-point variables yield ErrBadType.
	Ints() ([]int, error)
	// String returns the value of a character/string variable.
	String() (string, error)
	// Float64Matrix returns a two-dimensional variable as rows.
	Float64Matrix() ([][]float64, error)
}

// Open opens path with the pure-Go netCDF reader and wraps it as a File.
func Open(path string) (File, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncio: open %s: %w", path, err)
	}

	return &ncFile{path: path, group: g}, nil
}

// ncFile adapts an api.Group to the File contract.
type ncFile struct {
	path  string
	group api.Group
}

func (f *ncFile) Path() string { return f.path }

func (f *ncFile) HasVar(name string) bool {
	v, err := f.group.GetVariable(name)

	return err == nil && v != nil
}

func (f *ncFile) Var(name string) (Var, error) {
	v, err := f.group.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("ncio: %s: read %q: %w", f.path, name, err)
	}
	if v == nil {
		return nil, fmt.Errorf("ncio: %s: %q: %w", f.path, name, ErrNoVar)
	}

	return &value{name: name, val: v.Values}, nil
}

func (f *ncFile) Close() error {
	f.group.Close()

	return nil
}

// value implements Var over the decoded nested-slice representation shared
// by the netCDF backend and the Memory backend.
type value struct {
	name string
	val  any
}

func (v *value) Name() string { return v.name }

func (v *value) Dims() []int {
	dims := []int{}
	rv := concrete(reflect.ValueOf(v.val))
	for rv.Kind() == reflect.Slice {
		dims = append(dims, rv.Len())
		if rv.Len() == 0 {
			break
		}
		rv = concrete(rv.Index(0))
	}

	return dims
}

func (v *value) Float64s() ([]float64, error) {
	out, err := appendFloat64s(make([]float64, 0, sizeOf(v.Dims())), reflect.ValueOf(v.val))
	if err != nil {
		return nil, fmt.Errorf("ncio: %q: %w", v.name, err)
	}

	return out, nil
}

func (v *value) Ints() ([]int, error) {
	out, err := appendInts(make([]int, 0, sizeOf(v.Dims())), reflect.ValueOf(v.val))
	if err != nil {
		return nil, fmt.Errorf("ncio: %q: %w", v.name, err)
	}

	return out, nil
}

func (v *value) String() (string, error) {
	s, ok := v.val.(string)
	if !ok {
		return "", fmt.Errorf("ncio: %q: %T is not a string: %w", v.name, v.val, ErrBadType)
	}

	return s, nil
}

func (v *value) Float64Matrix() ([][]float64, error) {
	dims := v.Dims()
	if len(dims) != 2 {
		return nil, fmt.Errorf("ncio: %q: shape %v is not a matrix: %w", v.name, dims, ErrBadType)
	}
	flat, err := v.Float64s()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, dims[0])
	for i := range rows {
		rows[i] = flat[i*dims[1] : (i+1)*dims[1]]
	}

	return rows, nil
}

// concrete unwraps interface values so shape walking sees the stored kinds.
func concrete(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}

	return rv
}

func sizeOf(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}

	return n
}

func appendFloat64s(dst []float64, rv reflect.Value) ([]float64, error) {
	rv = concrete(rv)
	switch rv.Kind() {
	case reflect.Slice:
		var err error
		for i := 0; i < rv.Len(); i++ {
			if dst, err = appendFloat64s(dst, rv.Index(i)); err != nil {
				return nil, err
			}
		}
	case reflect.Float32, reflect.Float64:
		dst = append(dst, rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst = append(dst, float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst = append(dst, float64(rv.Uint()))
	default:
		return nil, fmt.Errorf("%v is not numeric: %w", rv.Kind(), ErrBadType)
	}

	return dst, nil
}

func appendInts(dst []int, rv reflect.Value) ([]int, error) {
	rv = concrete(rv)
	switch rv.Kind() {
	case reflect.Slice:
		var err error
		for i := 0; i < rv.Len(); i++ {
			if dst, err = appendInts(dst, rv.Index(i)); err != nil {
				return nil, err
			}
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst = append(dst, int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst = append(dst, int(rv.Uint()))
	default:
		return nil, fmt.Errorf("%v is not an integer: %w", rv.Kind(), ErrBadType)
	}

	return dst, nil
}
