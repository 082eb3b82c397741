// Package chart turns evaluated motor curves into an annotated line chart and
// writes it out as an image.
//
// A [Figure] is a declarative description: line series, axis bounds, labels
// and point annotations. [Figure.Plot] builds the gonum plot from it and
// [Save] renders that plot to disk, choosing the encoder from the file
// extension.
package chart
