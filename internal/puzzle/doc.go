// Package puzzle defines the parameters of a fragment draw and the
// fragment-to-picture numbering shared by every calculator in the module.
package puzzle
