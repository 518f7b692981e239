// Package matrixio loads a dense matrix from a file in one of the common
// numeric interchange formats.
//
// 📂 Formats (chosen by extension):
//
//	.mat              MATLAB level 5 (plain and zlib-compressed elements)
//	.mtx, .mtx.gz     MatrixMarket, coordinate or array, real/integer/pattern
//	.npy, .npz        NumPy array file / zip archive of array files
//	.txt              whitespace (or comma) separated numbers, '#' comments
//
// The extension is the last suffix when it is four characters long
// (".mat"), or the four-character suffix in front of a final ".gz"
// (".mtx.gz"). Any other name is tried with every loader in turn (MATLAB,
// MatrixMarket, text, NumPy) and the first success wins; a logger passed
// with WithLogger receives a warning when that happens.
//
// Containers with named entries (MATLAB, NPZ) take an optional WithKey; the
// key is rejected for formats without names (MatrixMarket, text). Without a
// key a container must hold exactly one matrix.
//
// Shapes: 2-d data loads as is, 1-d data of length n as an n×1 column and
// 0-d data as 1×1. Sparse MatrixMarket and MATLAB data is densified. NaN and
// ±Inf stored in a file are preserved.
//
// Sizes are checked before any buffer is allocated: a negative size is
// ErrFormat, while an empty matrix (a zero extent, e.g. an NPY array of shape
// (0,)) and one of more than 2^28 elements are ErrUnsupported, since
// matrix.Dense has no empty form.
//
// Every failure is a *LoadError naming the path and key; errors.Is(err,
// ErrLoad) always holds, and the cause (ErrKeyNotFound, fs.ErrNotExist, ...)
// stays reachable.
package matrixio
