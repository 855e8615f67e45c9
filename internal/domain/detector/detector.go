// Package detector contiene los sub-detectores de smart money.
//
// Cada detector es una función pura sobre los snapshots que necesita y devuelve
// un domain.SubScore con score en [0,1] y cero o más líneas de evidencia.
// Ningún detector hace I/O: el book del token YES llega ya resuelto como domain.BookFetch.
package detector
