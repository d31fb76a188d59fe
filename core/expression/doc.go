// Package expression synthesizes the textual formulas the external
// modeling application stores on branch variables.
//
// A variable holds either a bare constant ("50") when a single data point
// exists, or a series function over (year, value) pairs, e.g.
// "Interp(2020, 50, 2021, 55)". The builder never zero-fills missing years
// by default; the fill policy is enumerated (skip, zero, carry_forward) and
// chosen by the caller.
//
// Parse is the inverse of Build for series forms, used to expand stored
// expressions back into year columns.
package expression
