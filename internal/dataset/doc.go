// Package dataset reads and generates the integer lists used to build sets.
//
// A dataset is a directory of text files, one list per file, each holding
// unsigned 32-bit integers separated by commas or whitespace. LoadDir reads
// the files of one extension in parallel and returns them in lexical order.
//
// Uniform and Clustered generate synthetic sorted lists; Clustered follows
// the model of Anh and Moffat, "Index compression using 64-bit words" (2010).
package dataset
