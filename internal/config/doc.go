// Package config resolves the calculator settings: the binomial table bound,
// the sweep bounds and tolerance, the sampler trials and seed, the result cache
// size and the log level. Values come from defaults, BINGO_* environment
// variables, a YAML file and CLI flags, each source overriding the previous.
package config
