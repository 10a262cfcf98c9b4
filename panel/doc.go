// Package panel turns the raw name dataset into an ordered grid of lines.
//
// The dataset lists every name with the side, panel, row and position it
// occupies on the monument. Only side 1 participates. The grid holds the
// upper panel's rows first and the lower panel's rows after, each in row
// order; within a row names are ordered by position. Positions nobody
// occupies stay as holes and are skipped by Line.Names. A row holding only
// blank names produces no line.
//
// A record whose row or number is not an integer in [1, MaxIndex] fails the
// whole parse with monument.ErrDatasetParse.
package panel
