// Package application provides application initialization and dependency wiring.
// It builds the binomial table once and shares it with the predictor, wraps the
// enumeration oracle in a result cache, and assembles the verification harness
// and sampler, keeping the main package focused on CLI parsing and output.
package application
