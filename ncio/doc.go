// Package ncio is the seam between this module and the structured scientific
// data files (netCDF) written by ab-initio codes.
//
// What:
//
//   - File is a minimal read contract: look a variable up by name, close.
//   - Var exposes a variable's decoded values as flat float64/int slices,
//     strings, or shaped helpers; shapes derive from the decoded nested
//     slices, not from a dimension-query API.
//   - Open backs File with the pure-Go netCDF reader
//     (github.com/batchatco/go-native-netcdf).
//   - Memory backs File with an in-process variable map for tests.
//
// Why:
//
//   - The container format is an external collaborator: consumers of this
//     module care about named arrays, not about netCDF internals.
//   - A memory implementation keeps the domain packages testable without
//     binary fixtures.
//
// Errors:
//
//   - ErrNoVar: the named variable does not exist in the file.
//   - ErrBadType: a variable's decoded values do not fit the requested view.
package ncio
